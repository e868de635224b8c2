package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/handlers"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/logger"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/middleware"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/services"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Household{},
		&models.User{},
		&models.Account{},
		&models.Investment{},
		&models.Loan{},
		&models.ExtraPaymentRule{},
		&models.LoanPayment{},
		&models.Snapshot{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	snapshotService := services.NewSnapshotService(db, 5.0)
	accountService := services.NewAccountService(db, snapshotService)
	investmentService := services.NewInvestmentService(db, snapshotService)
	loanService := services.NewLoanService(db, snapshotService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	loanHandler := handlers.NewLoanHandler(loanService, auditService)
	netWorthHandler := handlers.NewNetWorthHandler(snapshotService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/household", authHandler.GetHousehold)
	protected.PUT("/household/home", authHandler.UpdateHome)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestmentByID)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	loans := protected.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/:id", loanHandler.GetLoanByID)
	loans.PUT("/:id", loanHandler.UpdateLoan)
	loans.DELETE("/:id", loanHandler.DeleteLoan)
	loans.GET("/:id/schedule", loanHandler.GetSchedule)
	loans.GET("/:id/projection", loanHandler.GetProjection)
	loans.POST("/:id/payments", loanHandler.RecordPayment)
	loans.GET("/:id/payments", loanHandler.GetPayments)
	loans.DELETE("/:id/payments/:paymentId", loanHandler.DeletePayment)
	loans.POST("/:id/extra-payments", loanHandler.CreateExtraRule)
	loans.GET("/:id/extra-payments", loanHandler.GetExtraRules)
	loans.DELETE("/:id/extra-payments/:ruleId", loanHandler.DeleteExtraRule)

	networth := protected.Group("/networth")
	networth.GET("", netWorthHandler.GetSummary)
	networth.POST("/snapshots", netWorthHandler.RecordSnapshot)
	networth.GET("/snapshots", netWorthHandler.GetSnapshots)
	networth.GET("/trend", netWorthHandler.GetTrend)
	networth.GET("/forecast", netWorthHandler.GetForecast)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"household_name":"Test Household","email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}
