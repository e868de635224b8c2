package services

import (
	"time"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/finance"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(householdName, email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	GetHousehold(householdID string) (*models.Household, error)
	UpdateHome(householdID string, purchasePrice *float64, purchaseDate *time.Time, appreciationRate *float64) (*models.Household, error)
}

// AccountServicer defines the contract for bank-account business logic.
type AccountServicer interface {
	CreateAccount(householdID, name string, accountType models.AccountType, description, institution string, balance float64) (*models.Account, error)
	GetHouseholdAccounts(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(householdID, accountID string) (*models.Account, error)
	UpdateAccount(householdID, accountID string, name, description *string, balance *float64) (*models.Account, error)
	DeleteAccount(householdID, accountID string) error
}

// InvestmentServicer defines the contract for investment business logic.
type InvestmentServicer interface {
	CreateInvestment(householdID, name string, investmentType models.InvestmentType, balance float64, notes string) (*models.Investment, error)
	GetHouseholdInvestments(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(householdID, investmentID string) (*models.Investment, error)
	UpdateInvestment(householdID, investmentID string, name, notes *string, balance *float64) (*models.Investment, error)
	DeleteInvestment(householdID, investmentID string) error
}

// LoanServicer defines the contract for loan and payment business logic.
type LoanServicer interface {
	CreateLoan(householdID, name string, loanType models.LoanType, principal, annualRatePercent float64, termYears int, startDate time.Time, currentBalance *float64) (*models.Loan, error)
	GetHouseholdLoans(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error)
	GetLoanByID(householdID, loanID string) (*models.Loan, error)
	UpdateLoan(householdID, loanID string, name *string, currentBalance *float64) (*models.Loan, error)
	DeleteLoan(householdID, loanID string) error

	GetSchedule(householdID, loanID string) ([]finance.ScheduleEntry, error)
	ProjectLoan(householdID, loanID string) (*finance.Projection, error)

	RecordPayment(householdID, loanID string, date time.Time, amount float64, paymentType models.PaymentType, note string) (*models.LoanPayment, error)
	GetLoanPayments(householdID, loanID string, page pagination.PageRequest) (*pagination.PageResponse[models.LoanPayment], error)
	DeletePayment(householdID, loanID, paymentID string) error

	CreateExtraRule(householdID, loanID string, amount float64, frequency models.ExtraPaymentFrequency, startDate time.Time) (*models.ExtraPaymentRule, error)
	GetExtraRules(householdID, loanID string) ([]models.ExtraPaymentRule, error)
	DeleteExtraRule(householdID, loanID, ruleID string) error
}

// NetWorthTotals contains the live component totals for a household. All
// figures are in dollars; MortgageBalance is the sum of every loan balance,
// not just mortgages.
type NetWorthTotals struct {
	TotalBankBalance float64 `json:"total_bank_balance"`
	TotalInvestments float64 `json:"total_investments"`
	HomeValue        float64 `json:"home_value"`
	MortgageBalance  float64 `json:"mortgage_balance"`
	NetWorth         float64 `json:"net_worth"`
}

// TrendPoint is one point in a net worth history series, carrying the
// allocation components so charts can show how the total breaks down.
// HomeEquity is the appreciated home value net of loan balances.
type TrendPoint struct {
	Date             time.Time `json:"date"`
	NetWorth         float64   `json:"net_worth"`
	TotalBankBalance float64   `json:"total_bank_balance"`
	TotalInvestments float64   `json:"total_investments"`
	HomeEquity       float64   `json:"home_equity"`
}

// SnapshotServicer defines the contract for net worth aggregation,
// history, and forecasting.
type SnapshotServicer interface {
	ComputeTotals(householdID string) (*NetWorthTotals, error)
	Upsert(householdID string, asOf time.Time) (*models.Snapshot, error)
	Refresh(householdID string)
	Trend(householdID string, window finance.Window) ([]TrendPoint, error)
	Forecast(householdID string, window finance.Window) ([]finance.ForecastPoint, error)
	GetSnapshots(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
