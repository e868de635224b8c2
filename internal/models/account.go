package models

// AccountType represents the type of bank account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCash     AccountType = "cash"
)

// Account represents a bank account whose balance counts toward net worth.
type Account struct {
	Base
	HouseholdID string      `gorm:"type:uuid;not null;index" json:"household_id"`
	Name        string      `gorm:"not null" json:"name"`
	Type        AccountType `gorm:"not null" json:"type"`
	Description string      `json:"description"`
	Balance     float64     `gorm:"not null;default:0" json:"balance"`
	Currency    string      `gorm:"not null;default:'USD'" json:"currency"`
	Institution string      `json:"institution,omitempty"`
}
