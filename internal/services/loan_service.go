package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/finance"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
)

// loanService handles loan, payment, and extra-payment-rule business logic.
type loanService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
}

// NewLoanService creates a new LoanServicer. The snapshot servicer is used to
// refresh the household's net worth after balance-affecting operations; it
// may be nil in contexts that do not track net worth.
func NewLoanService(db *gorm.DB, snapshots SnapshotServicer) LoanServicer {
	return &loanService{db: db, snapshots: snapshots}
}

// CreateLoan creates a new loan. The monthly payment is derived from the
// terms and cached on the row. CurrentBalance defaults to the principal when
// not supplied (a freshly originated loan).
func (s *loanService) CreateLoan(householdID, name string, loanType models.LoanType, principal, annualRatePercent float64, termYears int, startDate time.Time, currentBalance *float64) (*models.Loan, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan name is required")
	}
	if principal <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan principal must be positive")
	}
	if annualRatePercent < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate cannot be negative")
	}
	if termYears <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan term must be at least one year")
	}

	balance := principal
	if currentBalance != nil {
		if *currentBalance < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan balance cannot be negative")
		}
		balance = *currentBalance
	}

	loan := &models.Loan{
		HouseholdID:       householdID,
		Name:              name,
		Type:              loanType,
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		StartDate:         startDate,
		CurrentBalance:    balance,
		MonthlyPayment:    finance.MonthlyPayment(principal, annualRatePercent, termYears),
	}

	if err := s.db.Create(loan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.refreshSnapshot(householdID)
	return loan, nil
}

// GetHouseholdLoans retrieves a paginated list of loans for a household.
func (s *loanService) GetHouseholdLoans(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Loan{}).Where("household_id = ?", householdID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var loans []models.Loan
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(loans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetLoanByID retrieves a loan by ID for a specific household
func (s *loanService) GetLoanByID(householdID, loanID string) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.Where("id = ? AND household_id = ?", loanID, householdID).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &loan, nil
}

// UpdateLoan updates a loan's name or manually corrects its balance. The
// terms of the loan (principal, rate, term) are fixed at creation.
func (s *loanService) UpdateLoan(householdID, loanID string, name *string, currentBalance *float64) (*models.Loan, error) {
	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan name cannot be empty")
		}
		updates["name"] = *name
	}
	if currentBalance != nil {
		if *currentBalance < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan balance cannot be negative")
		}
		updates["current_balance"] = *currentBalance
	}

	if len(updates) == 0 {
		return loan, nil
	}

	if err := s.db.Model(loan).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if currentBalance != nil {
		s.refreshSnapshot(householdID)
	}
	return loan, nil
}

// DeleteLoan soft-deletes a loan. Its payments and rules are left in place
// but become unreachable through the loan.
func (s *loanService) DeleteLoan(householdID, loanID string) error {
	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(loan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.refreshSnapshot(householdID)
	return nil
}

// GetSchedule computes the loan's full amortization schedule from its
// original terms.
func (s *loanService) GetSchedule(householdID, loanID string) ([]finance.ScheduleEntry, error) {
	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return nil, err
	}

	return finance.Schedule(loan.Principal, loan.AnnualRatePercent, loan.TermYears, loan.StartDate), nil
}

// ProjectLoan computes the loan's payoff projection with all of its
// extra-payment rules applied.
func (s *loanService) ProjectLoan(householdID, loanID string) (*finance.Projection, error) {
	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return nil, err
	}

	rules, err := s.GetExtraRules(householdID, loanID)
	if err != nil {
		return nil, err
	}

	projection := finance.Project(loan.Principal, loan.AnnualRatePercent, loan.TermYears, loan.StartDate, financeRules(rules))
	return &projection, nil
}

// RecordPayment splits a payment into principal and interest, appends it to
// the loan's ledger, and decrements the loan balance, atomically. The balance
// never goes below zero.
func (s *loanService) RecordPayment(householdID, loanID string, date time.Time, amount float64, paymentType models.PaymentType, note string) (*models.LoanPayment, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}

	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return nil, err
	}

	split := finance.SplitPayment(loan.CurrentBalance, loan.AnnualRatePercent, amount, finance.PaymentType(paymentType))

	payment := &models.LoanPayment{
		LoanID:        loan.ID,
		Date:          date,
		Amount:        amount,
		Type:          paymentType,
		PrincipalPaid: split.PrincipalPaid,
		InterestPaid:  split.InterestPaid,
		Note:          note,
	}

	newBalance := finance.Round2(loan.CurrentBalance - split.PrincipalPaid)
	if newBalance < 0 {
		newBalance = 0
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(loan).Update("current_balance", newBalance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	loan.CurrentBalance = newBalance
	s.refreshSnapshot(householdID)
	return payment, nil
}

// GetLoanPayments retrieves a paginated list of payments for a loan, most
// recent first.
func (s *loanService) GetLoanPayments(householdID, loanID string, page pagination.PageRequest) (*pagination.PageResponse[models.LoanPayment], error) {
	if _, err := s.GetLoanByID(householdID, loanID); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.LoanPayment{}).Where("loan_id = ?", loanID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.LoanPayment
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC, created_at DESC").Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeletePayment removes a payment from the ledger and restores its principal
// portion to the loan balance, atomically.
func (s *loanService) DeletePayment(householdID, loanID, paymentID string) error {
	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return err
	}

	var payment models.LoanPayment
	if err := s.db.Where("id = ? AND loan_id = ?", paymentID, loanID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	restored := finance.Round2(loan.CurrentBalance + payment.PrincipalPaid)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(loan).Update("current_balance", restored).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(householdID)
	return nil
}

// CreateExtraRule attaches a recurring extra-payment rule to a loan. Rules
// only shape projections; they never change the loan's actual balance.
func (s *loanService) CreateExtraRule(householdID, loanID string, amount float64, frequency models.ExtraPaymentFrequency, startDate time.Time) (*models.ExtraPaymentRule, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "extra payment amount must be positive")
	}

	loan, err := s.GetLoanByID(householdID, loanID)
	if err != nil {
		return nil, err
	}

	rule := &models.ExtraPaymentRule{
		LoanID:    loan.ID,
		Amount:    amount,
		Frequency: frequency,
		StartDate: startDate,
	}

	if err := s.db.Create(rule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rule, nil
}

// GetExtraRules retrieves all extra-payment rules for a loan.
func (s *loanService) GetExtraRules(householdID, loanID string) ([]models.ExtraPaymentRule, error) {
	if _, err := s.GetLoanByID(householdID, loanID); err != nil {
		return nil, err
	}

	var rules []models.ExtraPaymentRule
	if err := s.db.Where("loan_id = ?", loanID).Order("created_at ASC").Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rules, nil
}

// DeleteExtraRule removes an extra-payment rule from a loan.
func (s *loanService) DeleteExtraRule(householdID, loanID, ruleID string) error {
	if _, err := s.GetLoanByID(householdID, loanID); err != nil {
		return err
	}

	var rule models.ExtraPaymentRule
	if err := s.db.Where("id = ? AND loan_id = ?", ruleID, loanID).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExtraRuleNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&rule).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}

// refreshSnapshot updates the household's net worth snapshot after a
// balance-affecting change. Fire-and-forget.
func (s *loanService) refreshSnapshot(householdID string) {
	if s.snapshots != nil {
		s.snapshots.Refresh(householdID)
	}
}

// financeRules converts stored rules into the engine's representation.
func financeRules(rules []models.ExtraPaymentRule) []finance.ExtraPaymentRule {
	out := make([]finance.ExtraPaymentRule, 0, len(rules))
	for _, r := range rules {
		freq := finance.Monthly
		if r.Frequency == models.ExtraPaymentAnnual {
			freq = finance.Annual
		}
		out = append(out, finance.ExtraPaymentRule{
			Amount:    r.Amount,
			Frequency: freq,
			StartDate: r.StartDate,
		})
	}
	return out
}
