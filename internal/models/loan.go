package models

import "time"

// LoanType represents the kind of amortizing debt.
type LoanType string

const (
	LoanTypeMortgage LoanType = "mortgage"
	LoanTypeAuto     LoanType = "auto"
	LoanTypePersonal LoanType = "personal"
	LoanTypeStudent  LoanType = "student"
)

// Loan represents a fixed-rate, fixed-term, monthly-compounding amortizing
// debt obligation.
//
// CurrentBalance is authoritative: it is decremented by the principal portion
// when a payment is recorded and restored when a payment is deleted, and it
// may be edited manually. Replaying the payment ledger from Principal is not
// guaranteed to reproduce it. It is clamped at zero and never negative.
type Loan struct {
	Base
	HouseholdID       string    `gorm:"type:uuid;not null;index" json:"household_id"`
	Name              string    `gorm:"not null" json:"name"`
	Type              LoanType  `gorm:"not null" json:"type"`
	Principal         float64   `gorm:"not null" json:"principal"`
	AnnualRatePercent float64   `gorm:"not null" json:"annual_rate_percent"`
	TermYears         int       `gorm:"not null" json:"term_years"`
	StartDate         time.Time `gorm:"not null" json:"start_date"`
	CurrentBalance    float64   `gorm:"not null" json:"current_balance"`

	// MonthlyPayment is derived from the loan terms and cached on the row
	// so list views never recompute it.
	MonthlyPayment float64 `gorm:"not null" json:"monthly_payment"`

	// Relationships
	ExtraPaymentRules []ExtraPaymentRule `gorm:"foreignKey:LoanID" json:"extra_payment_rules,omitempty"`
	Payments          []LoanPayment      `gorm:"foreignKey:LoanID" json:"payments,omitempty"`
}

// ExtraPaymentFrequency represents how often an extra-payment rule applies.
type ExtraPaymentFrequency string

const (
	ExtraPaymentMonthly ExtraPaymentFrequency = "monthly"
	ExtraPaymentAnnual  ExtraPaymentFrequency = "annual"
)

// ExtraPaymentRule is a recurring modifier to a loan's projected schedule.
// It never mutates the loan itself; it only shapes projections. Multiple
// rules on one loan are summed per period.
type ExtraPaymentRule struct {
	Base
	LoanID    string                `gorm:"type:uuid;not null;index" json:"loan_id"`
	Amount    float64               `gorm:"not null" json:"amount"`
	Frequency ExtraPaymentFrequency `gorm:"not null" json:"frequency"`
	StartDate time.Time             `gorm:"not null" json:"start_date"`
}
