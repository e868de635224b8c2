package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/finance"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestHousehold creates a household with no home asset.
func CreateTestHousehold(t *testing.T, db *gorm.DB) *models.Household {
	t.Helper()

	household := &models.Household{
		Name: fmt.Sprintf("Household %d", nextID()),
	}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}
	return household
}

// CreateTestHouseholdWithHome creates a household with home purchase data.
func CreateTestHouseholdWithHome(t *testing.T, db *gorm.DB, purchasePrice float64, purchaseDate time.Time, appreciationRate float64) *models.Household {
	t.Helper()

	household := &models.Household{
		Name:                 fmt.Sprintf("Household %d", nextID()),
		HomePurchasePrice:    &purchasePrice,
		HomePurchaseDate:     &purchaseDate,
		HomeAppreciationRate: appreciationRate,
	}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}
	return household
}

// CreateTestUser creates a user in the household with a hashed password and
// unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, householdID string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		HouseholdID: householdID,
		Email:       fmt.Sprintf("user%d@test.com", nextID()),
		Password:    string(hash),
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a checking account with the given balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, householdID string, balance float64) *models.Account {
	t.Helper()

	account := &models.Account{
		HouseholdID: householdID,
		Name:        fmt.Sprintf("Account %d", nextID()),
		Type:        models.AccountTypeChecking,
		Balance:     balance,
		Currency:    "USD",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestInvestment creates an ETF position with the given balance.
func CreateTestInvestment(t *testing.T, db *gorm.DB, householdID string, balance float64) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		HouseholdID: householdID,
		Name:        fmt.Sprintf("Investment %d", nextID()),
		Type:        models.InvestmentTypeETF,
		Balance:     balance,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestLoan creates a mortgage with the given terms. The balance starts
// at the principal and the monthly payment is derived from the terms.
func CreateTestLoan(t *testing.T, db *gorm.DB, householdID string, principal, annualRatePercent float64, termYears int) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		HouseholdID:       householdID,
		Name:              fmt.Sprintf("Loan %d", nextID()),
		Type:              models.LoanTypeMortgage,
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentBalance:    principal,
		MonthlyPayment:    finance.MonthlyPayment(principal, annualRatePercent, termYears),
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}
