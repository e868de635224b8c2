package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfileRefresh(t *testing.T) {
	app := setupApp(t)

	// Step 1: Register
	accessToken, refreshToken, userID := app.registerUser(t, "auth@test.com", "password123")
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty tokens from registration")
	}
	if userID == "" {
		t.Fatal("expected non-empty user ID")
	}

	// Step 2: Login with same credentials
	loginAccess, loginRefresh := app.loginUser(t, "auth@test.com", "password123")
	if loginAccess == "" || loginRefresh == "" {
		t.Fatal("expected non-empty tokens from login")
	}

	// Step 3: Access profile with login access token
	rec := app.request("GET", "/api/v1/profile", "", loginAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" {
		t.Errorf("expected email auth@test.com, got %v", user["email"])
	}

	// Step 4: Refresh token
	body := fmt.Sprintf(`{"refresh_token":%q}`, loginRefresh)
	rec = app.request("POST", "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	refreshResult := parseJSON(t, rec)
	newAccess := refreshResult["access_token"].(string)
	if newAccess == "" {
		t.Fatal("expected non-empty new access token after refresh")
	}

	// Step 5: Access profile with new access token
	rec = app.request("GET", "/api/v1/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with new token, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 6: The household created at registration is reachable
	rec = app.request("GET", "/api/v1/household", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	household := parseJSON(t, rec)["household"].(map[string]interface{})
	if household["name"] != "Test Household" {
		t.Errorf("expected household name 'Test Household', got %v", household["name"])
	}
}

func TestAuthFlow_RegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "dup@test.com", "password123")

	// Try to register again with same email
	rec := app.request("POST", "/api/v1/auth/register",
		`{"household_name":"Another","email":"dup@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", errObj["code"])
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "wrong@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"wrong@test.com","password":"wrongpassword"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", errObj["code"])
	}
}

func TestAuthFlow_UpdateHome(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "home@test.com", "password123")

	rec := app.request("PUT", "/api/v1/household/home",
		`{"purchase_price":500000,"purchase_date":"2020-06-15","appreciation_rate":3.5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	household := parseJSON(t, rec)["household"].(map[string]interface{})
	if got := household["home_purchase_price"].(float64); got != 500000 {
		t.Errorf("expected purchase price 500000, got %v", got)
	}
	if got := household["home_appreciation_rate"].(float64); got != 3.5 {
		t.Errorf("expected appreciation rate 3.5, got %v", got)
	}
}

func TestAuthFlow_ProfileWithoutAuth(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthFlow_ProfileWithInvalidToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/profile", "", "invalid-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
