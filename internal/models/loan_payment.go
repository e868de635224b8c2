package models

import (
	"time"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/uuid"

	"gorm.io/gorm"
)

// PaymentType distinguishes a scheduled payment from a principal-only one.
type PaymentType string

const (
	PaymentTypeRegular PaymentType = "regular"
	PaymentTypeExtra   PaymentType = "extra"
)

// LoanPayment is an immutable ledger entry for one payment actually made.
// No Base embed, no soft deletes: deleting a payment removes the row and
// restores its principal to the owning loan's balance.
type LoanPayment struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	LoanID        string      `gorm:"type:uuid;not null;index" json:"loan_id"`
	Date          time.Time   `gorm:"not null" json:"date"`
	Amount        float64     `gorm:"not null" json:"amount"`
	Type          PaymentType `gorm:"not null" json:"type"`
	PrincipalPaid float64     `gorm:"not null" json:"principal_paid"`
	InterestPaid  float64     `gorm:"not null" json:"interest_paid"`
	Note          string      `json:"note,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *LoanPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
