package models

import (
	"time"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/uuid"

	"gorm.io/gorm"
)

// Snapshot is one point-in-time net worth summary for a household.
// At most one exists per household per calendar day: Date is normalized to
// midnight and (HouseholdID, Date) is the upsert key. Time-series data, so
// no Base embed and no soft deletes.
//
// NetWorth is always recomputed from the four component fields on write,
// never stored independently of them.
type Snapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID      string    `gorm:"type:uuid;not null;index:idx_snapshot_day,unique" json:"household_id"`
	Date             time.Time `gorm:"not null;index:idx_snapshot_day,unique" json:"date"`
	TotalBankBalance float64   `gorm:"not null" json:"total_bank_balance"`
	TotalInvestments float64   `gorm:"not null" json:"total_investments"`
	HomeValue        float64   `gorm:"not null" json:"home_value"`
	MortgageBalance  float64   `gorm:"not null" json:"mortgage_balance"`
	NetWorth         float64   `gorm:"not null" json:"net_worth"`
	CreatedAt        time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *Snapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
