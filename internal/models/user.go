package models

import "time"

// User represents a member of a household. Authentication is per user;
// all financial data belongs to the user's household.
type User struct {
	Base
	HouseholdID      string     `gorm:"type:uuid;not null;index" json:"household_id"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Household Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
}
