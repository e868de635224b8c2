package services

import (
	"testing"
	"time"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/testutil"
)

func TestCreateLoan(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		loan, err := svc.CreateLoan(household.ID, "Home mortgage", models.LoanTypeMortgage, 300000, 6.0, 30, start, nil)
		testutil.AssertNoError(t, err)

		if loan.ID == "" {
			t.Fatal("expected non-empty loan ID")
		}
		testutil.AssertNear(t, 1798.65, loan.MonthlyPayment, "derived monthly payment")
		if loan.CurrentBalance != 300000 {
			t.Errorf("balance should default to principal, got %.2f", loan.CurrentBalance)
		}
	})

	t.Run("explicit_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)

		balance := 250000.0
		start := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
		loan, err := svc.CreateLoan(household.ID, "Home mortgage", models.LoanTypeMortgage, 300000, 6.0, 30, start, &balance)
		testutil.AssertNoError(t, err)

		if loan.CurrentBalance != 250000 {
			t.Errorf("expected balance 250000, got %.2f", loan.CurrentBalance)
		}
	})

	t.Run("invalid_terms", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		if _, err := svc.CreateLoan(household.ID, "Bad", models.LoanTypeAuto, 0, 6.0, 5, start, nil); err == nil {
			t.Error("zero principal should be rejected")
		}
		if _, err := svc.CreateLoan(household.ID, "Bad", models.LoanTypeAuto, 20000, -1, 5, start, nil); err == nil {
			t.Error("negative rate should be rejected")
		}
		if _, err := svc.CreateLoan(household.ID, "Bad", models.LoanTypeAuto, 20000, 6.0, 0, start, nil); err == nil {
			t.Error("zero term should be rejected")
		}
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("regular_split", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		payment, err := svc.RecordPayment(household.ID, loan.ID, time.Now(), 1798.65, models.PaymentTypeRegular, "")
		testutil.AssertNoError(t, err)

		testutil.AssertNear(t, 1500.00, payment.InterestPaid, "interest portion")
		testutil.AssertNear(t, 298.65, payment.PrincipalPaid, "principal portion")

		var stored models.Loan
		testutil.AssertNoError(t, db.First(&stored, "id = ?", loan.ID).Error)
		testutil.AssertNear(t, 299701.35, stored.CurrentBalance, "balance after payment")
	})

	t.Run("extra_all_principal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 50000, 6.0, 10)

		payment, err := svc.RecordPayment(household.ID, loan.ID, time.Now(), 5000, models.PaymentTypeExtra, "bonus")
		testutil.AssertNoError(t, err)

		if payment.InterestPaid != 0 {
			t.Errorf("extra payment should carry no interest, got %.2f", payment.InterestPaid)
		}
		testutil.AssertNear(t, 5000, payment.PrincipalPaid, "principal portion")

		var stored models.Loan
		testutil.AssertNoError(t, db.First(&stored, "id = ?", loan.ID).Error)
		testutil.AssertNear(t, 45000, stored.CurrentBalance, "balance after extra payment")
	})

	t.Run("overpayment_clamps_to_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 25000, 6.0, 10)

		payment, err := svc.RecordPayment(household.ID, loan.ID, time.Now(), 50000, models.PaymentTypeExtra, "payoff")
		testutil.AssertNoError(t, err)

		testutil.AssertNear(t, 25000, payment.PrincipalPaid, "principal clamps at balance")

		var stored models.Loan
		testutil.AssertNoError(t, db.First(&stored, "id = ?", loan.ID).Error)
		if stored.CurrentBalance != 0 {
			t.Errorf("balance should be exactly zero, got %.2f", stored.CurrentBalance)
		}
	})

	t.Run("nonpositive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 25000, 6.0, 10)

		_, err := svc.RecordPayment(household.ID, loan.ID, time.Now(), 0, models.PaymentTypeRegular, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("ledger_row_created", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		_, err := svc.RecordPayment(household.ID, loan.ID, time.Now(), 1798.65, models.PaymentTypeRegular, "")
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.LoanPayment{}).Where("loan_id = ?", loan.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 ledger row, got %d", count)
		}
	})
}

func TestDeletePayment(t *testing.T) {
	t.Run("restores_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		payment, err := svc.RecordPayment(household.ID, loan.ID, time.Now(), 1798.65, models.PaymentTypeRegular, "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeletePayment(household.ID, loan.ID, payment.ID))

		var stored models.Loan
		testutil.AssertNoError(t, db.First(&stored, "id = ?", loan.ID).Error)
		testutil.AssertNear(t, 300000, stored.CurrentBalance, "balance restored after delete")

		var count int64
		db.Model(&models.LoanPayment{}).Where("loan_id = ?", loan.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 ledger rows after delete, got %d", count)
		}
	})

	t.Run("unknown_payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		err := svc.DeletePayment(household.ID, loan.ID, "01890000-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "PAYMENT_NOT_FOUND")
	})
}

func TestGetSchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLoanService(db, nil)
	household := testutil.CreateTestHousehold(t, db)
	loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

	schedule, err := svc.GetSchedule(household.ID, loan.ID)
	testutil.AssertNoError(t, err)

	if len(schedule) != 360 {
		t.Fatalf("expected 360 schedule entries, got %d", len(schedule))
	}
	testutil.AssertNear(t, 1500.00, schedule[0].Interest, "first interest")
	if schedule[len(schedule)-1].Balance != 0 {
		t.Errorf("final balance should be exactly zero, got %.2f", schedule[len(schedule)-1].Balance)
	}
}

func TestProjectLoan(t *testing.T) {
	t.Run("no_rules_matches_schedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		projection, err := svc.ProjectLoan(household.ID, loan.ID)
		testutil.AssertNoError(t, err)

		if projection.MonthsSaved != 0 {
			t.Errorf("expected 0 months saved with no rules, got %d", projection.MonthsSaved)
		}
		if projection.InterestSaved != 0 {
			t.Errorf("expected 0 interest saved with no rules, got %.2f", projection.InterestSaved)
		}
	})

	t.Run("monthly_rule_shortens_payoff", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		_, err := svc.CreateExtraRule(household.ID, loan.ID, 200, models.ExtraPaymentMonthly, loan.StartDate)
		testutil.AssertNoError(t, err)

		projection, err := svc.ProjectLoan(household.ID, loan.ID)
		testutil.AssertNoError(t, err)

		if projection.MonthsSaved <= 0 {
			t.Errorf("expected months saved > 0, got %d", projection.MonthsSaved)
		}
		if projection.InterestSaved <= 0 {
			t.Errorf("expected interest saved > 0, got %.2f", projection.InterestSaved)
		}
	})
}

func TestExtraRules(t *testing.T) {
	t.Run("crud", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		rule, err := svc.CreateExtraRule(household.ID, loan.ID, 500, models.ExtraPaymentAnnual, loan.StartDate)
		testutil.AssertNoError(t, err)

		rules, err := svc.GetExtraRules(household.ID, loan.ID)
		testutil.AssertNoError(t, err)
		if len(rules) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(rules))
		}

		testutil.AssertNoError(t, svc.DeleteExtraRule(household.ID, loan.ID, rule.ID))

		rules, err = svc.GetExtraRules(household.ID, loan.ID)
		testutil.AssertNoError(t, err)
		if len(rules) != 0 {
			t.Errorf("expected 0 rules after delete, got %d", len(rules))
		}
	})

	t.Run("rules_do_not_touch_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		_, err := svc.CreateExtraRule(household.ID, loan.ID, 500, models.ExtraPaymentMonthly, loan.StartDate)
		testutil.AssertNoError(t, err)

		var stored models.Loan
		testutil.AssertNoError(t, db.First(&stored, "id = ?", loan.ID).Error)
		if stored.CurrentBalance != 300000 {
			t.Errorf("rules must not change the balance, got %.2f", stored.CurrentBalance)
		}
	})

	t.Run("nonpositive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLoanService(db, nil)
		household := testutil.CreateTestHousehold(t, db)
		loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

		_, err := svc.CreateExtraRule(household.ID, loan.ID, 0, models.ExtraPaymentMonthly, loan.StartDate)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetLoanPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLoanService(db, nil)
	household := testutil.CreateTestHousehold(t, db)
	loan := testutil.CreateTestLoan(t, db, household.ID, 300000, 6.0, 30)

	for i := 0; i < 3; i++ {
		_, err := svc.RecordPayment(household.ID, loan.ID, time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), 1798.65, models.PaymentTypeRegular, "")
		testutil.AssertNoError(t, err)
	}

	page, err := svc.GetLoanPayments(household.ID, loan.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 3 {
		t.Fatalf("expected 3 payments, got %d", page.TotalItems)
	}
	// Most recent first
	if !page.Data[0].Date.After(page.Data[2].Date) {
		t.Error("payments should be ordered most recent first")
	}
}
