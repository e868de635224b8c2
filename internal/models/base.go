package models

import (
	"time"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Soft deletes via DeletedAt:
// deleted rows are excluded from every query and every aggregation.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
