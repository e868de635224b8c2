package models

// InvestmentType represents the kind of investment holding.
type InvestmentType string

const (
	InvestmentTypeStock      InvestmentType = "stock"
	InvestmentTypeETF        InvestmentType = "etf"
	InvestmentTypeCrypto     InvestmentType = "crypto"
	InvestmentTypeRetirement InvestmentType = "retirement"
)

// Investment represents an investment position tracked at the balance level.
// The dashboard records the current market value directly; per-lot cost basis
// accounting is out of scope.
type Investment struct {
	Base
	HouseholdID string         `gorm:"type:uuid;not null;index" json:"household_id"`
	Name        string         `gorm:"not null" json:"name"`
	Type        InvestmentType `gorm:"not null" json:"type"`
	Balance     float64        `gorm:"not null;default:0" json:"balance"`
	Notes       string         `json:"notes,omitempty"`
}
