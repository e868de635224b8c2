package models

import "time"

// Household is the unit that owns all financial data. Accounts, investments,
// loans, and snapshots are scoped to a household, not to an individual user.
type Household struct {
	Base
	Name string `gorm:"not null" json:"name"`

	// Home asset. Value is never stored; it is derived from the purchase
	// price compounded at the appreciation rate. Both purchase fields must
	// be present for the home to count toward net worth.
	HomePurchasePrice    *float64   `json:"home_purchase_price,omitempty"`
	HomePurchaseDate     *time.Time `json:"home_purchase_date,omitempty"`
	HomeAppreciationRate float64    `gorm:"default:0" json:"home_appreciation_rate"`

	// Relationships
	Users       []User       `gorm:"foreignKey:HouseholdID" json:"users,omitempty"`
	Accounts    []Account    `gorm:"foreignKey:HouseholdID" json:"accounts,omitempty"`
	Investments []Investment `gorm:"foreignKey:HouseholdID" json:"investments,omitempty"`
	Loans       []Loan       `gorm:"foreignKey:HouseholdID" json:"loans,omitempty"`
}

// HasHome reports whether the household has enough data to value its home.
func (h *Household) HasHome() bool {
	return h.HomePurchasePrice != nil && h.HomePurchaseDate != nil
}
