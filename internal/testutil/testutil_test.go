package testutil_test

import (
	"testing"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"households", "users", "accounts", "investments", "loans", "extra_payment_rules", "loan_payments", "snapshots", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	household := testutil.CreateTestHousehold(t, db)
	if household.ID == "" {
		t.Fatal("household should have a non-empty ID")
	}

	user := testutil.CreateTestUser(t, db, household.ID)
	if user.HouseholdID != household.ID {
		t.Errorf("expected user in household %s, got %s", household.ID, user.HouseholdID)
	}

	account := testutil.CreateTestAccount(t, db, household.ID, 5000)
	if account.Balance != 5000 {
		t.Errorf("expected balance 5000, got %.2f", account.Balance)
	}

	investment := testutil.CreateTestInvestment(t, db, household.ID, 12000)
	if investment.Type != models.InvestmentTypeETF {
		t.Errorf("expected etf investment type, got %s", investment.Type)
	}

	loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)
	if loan.CurrentBalance != 300000 {
		t.Errorf("expected balance 300000, got %.2f", loan.CurrentBalance)
	}
	if loan.MonthlyPayment <= 0 {
		t.Error("loan should have a derived monthly payment")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrInvalidInput, "bad value")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
