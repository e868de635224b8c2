package integration

import (
	"fmt"
	"math"
	"net/http"
	"testing"
)

func TestLoanFlow_CreatePayAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "loan@test.com", "password123")

	// Step 1: Create a 30-year mortgage at 6% on $300,000
	rec := app.request("POST", "/api/v1/loans",
		`{"name":"Mortgage","type":"mortgage","principal":300000,"annual_rate_percent":6,"term_years":30,"start_date":"2024-01-01"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	loan := result["loan"].(map[string]interface{})
	loanID := loan["id"].(string)
	if got := loan["monthly_payment"].(float64); got != 1798.65 {
		t.Errorf("expected monthly payment 1798.65, got %v", got)
	}
	if got := loan["current_balance"].(float64); got != 300000 {
		t.Errorf("expected balance 300000, got %v", got)
	}

	// Step 2: Record a regular payment; first month splits 1500 interest / 298.65 principal
	rec = app.request("POST", fmt.Sprintf("/api/v1/loans/%s/payments", loanID),
		`{"date":"2024-02-01","amount":1798.65,"type":"regular"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	payment := parseJSON(t, rec)["payment"].(map[string]interface{})
	paymentID := payment["id"].(string)
	if got := payment["interest_paid"].(float64); got != 1500 {
		t.Errorf("expected interest 1500, got %v", got)
	}
	if got := payment["principal_paid"].(float64); got != 298.65 {
		t.Errorf("expected principal 298.65, got %v", got)
	}

	// Step 3: Balance decreased by the principal portion only
	rec = app.request("GET", "/api/v1/loans/"+loanID, "", token)
	loan = parseJSON(t, rec)["loan"].(map[string]interface{})
	if got := loan["current_balance"].(float64); got != 299701.35 {
		t.Errorf("expected balance 299701.35, got %v", got)
	}

	// Step 4: Deleting the payment restores the balance
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/loans/%s/payments/%s", loanID, paymentID), "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/loans/"+loanID, "", token)
	loan = parseJSON(t, rec)["loan"].(map[string]interface{})
	if got := loan["current_balance"].(float64); got != 300000 {
		t.Errorf("expected balance restored to 300000, got %v", got)
	}
}

func TestLoanFlow_ExtraPaymentIsAllPrincipal(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "extra@test.com", "password123")

	rec := app.request("POST", "/api/v1/loans",
		`{"name":"Auto","type":"auto","principal":20000,"annual_rate_percent":5,"term_years":5,"start_date":"2025-01-01"}`, token)
	loan := parseJSON(t, rec)["loan"].(map[string]interface{})
	loanID := loan["id"].(string)

	rec = app.request("POST", fmt.Sprintf("/api/v1/loans/%s/payments", loanID),
		`{"date":"2025-02-01","amount":500,"type":"extra"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	payment := parseJSON(t, rec)["payment"].(map[string]interface{})
	if got := payment["principal_paid"].(float64); got != 500 {
		t.Errorf("expected principal 500, got %v", got)
	}
	if got := payment["interest_paid"].(float64); got != 0 {
		t.Errorf("expected interest 0, got %v", got)
	}

	rec = app.request("GET", "/api/v1/loans/"+loanID, "", token)
	loan = parseJSON(t, rec)["loan"].(map[string]interface{})
	if got := loan["current_balance"].(float64); got != 19500 {
		t.Errorf("expected balance 19500, got %v", got)
	}
}

func TestLoanFlow_ScheduleEndsAtZero(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "sched@test.com", "password123")

	rec := app.request("POST", "/api/v1/loans",
		`{"name":"Mortgage","type":"mortgage","principal":300000,"annual_rate_percent":6,"term_years":30,"start_date":"2024-01-01"}`, token)
	loan := parseJSON(t, rec)["loan"].(map[string]interface{})
	loanID := loan["id"].(string)

	rec = app.request("GET", fmt.Sprintf("/api/v1/loans/%s/schedule", loanID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	schedule := parseJSON(t, rec)["schedule"].([]interface{})
	if len(schedule) != 360 {
		t.Fatalf("expected 360 schedule entries, got %d", len(schedule))
	}
	last := schedule[len(schedule)-1].(map[string]interface{})
	if got := last["balance"].(float64); got != 0 {
		t.Errorf("expected final balance 0, got %v", got)
	}
}

func TestLoanFlow_ProjectionWithExtraRule(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "proj@test.com", "password123")

	rec := app.request("POST", "/api/v1/loans",
		`{"name":"Mortgage","type":"mortgage","principal":300000,"annual_rate_percent":6,"term_years":30,"start_date":"2024-01-01"}`, token)
	loan := parseJSON(t, rec)["loan"].(map[string]interface{})
	loanID := loan["id"].(string)

	// Without rules, the projection matches the standard schedule
	rec = app.request("GET", fmt.Sprintf("/api/v1/loans/%s/projection", loanID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	projection := parseJSON(t, rec)["projection"].(map[string]interface{})
	if got := projection["months_saved"].(float64); got != 0 {
		t.Errorf("expected 0 months saved without rules, got %v", got)
	}

	// Add a $200/month extra-payment rule
	rec = app.request("POST", fmt.Sprintf("/api/v1/loans/%s/extra-payments", loanID),
		`{"amount":200,"frequency":"monthly","start_date":"2024-01-01"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/loans/%s/projection", loanID), "", token)
	projection = parseJSON(t, rec)["projection"].(map[string]interface{})
	if got := projection["months_saved"].(float64); got <= 0 {
		t.Errorf("expected months saved > 0 with extra payments, got %v", got)
	}
	if got := projection["interest_saved"].(float64); got <= 0 {
		t.Errorf("expected interest saved > 0 with extra payments, got %v", got)
	}

	// The rule shapes projections only; the balance is untouched
	rec = app.request("GET", "/api/v1/loans/"+loanID, "", token)
	loan = parseJSON(t, rec)["loan"].(map[string]interface{})
	if got := loan["current_balance"].(float64); got != 300000 {
		t.Errorf("expected balance unchanged at 300000, got %v", got)
	}
}

func TestLoanFlow_OverpaymentClampsToZero(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "clamp@test.com", "password123")

	rec := app.request("POST", "/api/v1/loans",
		`{"name":"Personal","type":"personal","principal":1000,"annual_rate_percent":10,"term_years":1,"start_date":"2025-01-01","current_balance":100}`, token)
	loan := parseJSON(t, rec)["loan"].(map[string]interface{})
	loanID := loan["id"].(string)

	// Extra payment larger than the remaining balance pays it off exactly
	rec = app.request("POST", fmt.Sprintf("/api/v1/loans/%s/payments", loanID),
		`{"date":"2025-06-01","amount":500,"type":"extra"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	payment := parseJSON(t, rec)["payment"].(map[string]interface{})
	if got := payment["principal_paid"].(float64); got != 100 {
		t.Errorf("expected principal capped at 100, got %v", got)
	}

	rec = app.request("GET", "/api/v1/loans/"+loanID, "", token)
	loan = parseJSON(t, rec)["loan"].(map[string]interface{})
	if got := loan["current_balance"].(float64); math.Abs(got) > 1e-9 {
		t.Errorf("expected balance exactly 0, got %v", got)
	}
}
