package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/services"
)

// LoanHandler handles loan, payment, and extra-payment-rule requests.
type LoanHandler struct {
	loanService  services.LoanServicer
	auditService services.AuditServicer
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanService services.LoanServicer, auditService services.AuditServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService, auditService: auditService}
}

// CreateLoanRequest represents the request payload for creating a loan.
type CreateLoanRequest struct {
	Name              string   `json:"name" binding:"required,min=1,max=100"`
	Type              string   `json:"type" binding:"required,loan_type"`
	Principal         float64  `json:"principal" binding:"required,gt=0"`
	AnnualRatePercent float64  `json:"annual_rate_percent" binding:"gte=0,lte=100"`
	TermYears         int      `json:"term_years" binding:"required,gte=1,lte=50"`
	StartDate         string   `json:"start_date" binding:"required"`
	CurrentBalance    *float64 `json:"current_balance" binding:"omitempty,gte=0"`
}

// UpdateLoanRequest represents the request payload for updating a loan.
type UpdateLoanRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	CurrentBalance *float64 `json:"current_balance" binding:"omitempty,gte=0"`
}

// RecordPaymentRequest represents the request payload for recording a payment.
type RecordPaymentRequest struct {
	Date   string  `json:"date" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Type   string  `json:"type" binding:"required,payment_type"`
	Note   string  `json:"note" binding:"max=500"`
}

// CreateExtraRuleRequest represents the request payload for creating an
// extra-payment rule.
type CreateExtraRuleRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Frequency string  `json:"frequency" binding:"required,extra_frequency"`
	StartDate string  `json:"start_date" binding:"required"`
}

// parseDate accepts RFC3339 timestamps or bare dates.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
	}
	return parsed, err
}

// CreateLoan handles the creation of a new loan
// @Summary     Create a loan
// @Description Create a new amortizing loan for the authenticated household
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLoanRequest true "Loan details"
// @Success     201 {object} models.Loan "Loan created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format"))
		return
	}

	loan, err := h.loanService.CreateLoan(
		householdID,
		req.Name,
		models.LoanType(req.Type),
		req.Principal,
		req.AnnualRatePercent,
		req.TermYears,
		startDate,
		req.CurrentBalance,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LOAN", "loan", loan.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "principal": req.Principal})

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// GetLoans handles the retrieval of loans for a household
// @Summary     Get household loans
// @Description Get a paginated list of loans for the authenticated household
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Loan] "Paginated loans"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [get]
func (h *LoanHandler) GetLoans(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.loanService.GetHouseholdLoans(householdID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLoanByID handles the retrieval of a specific loan
// @Summary     Get loan by ID
// @Description Get a specific loan by ID for the authenticated household
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     200 {object} models.Loan "Loan details"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [get]
func (h *LoanHandler) GetLoanByID(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	loan, err := h.loanService.GetLoanByID(householdID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// UpdateLoan handles updating a loan's name or balance.
// @Summary     Update loan
// @Description Update a loan's name or manually correct its balance
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Loan ID"
// @Param       request body UpdateLoanRequest true "Fields to update"
// @Success     200 {object} models.Loan "Updated loan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [put]
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loanService.UpdateLoan(householdID, loanID, req.Name, req.CurrentBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.CurrentBalance != nil {
		h.auditService.Log(userID, "UPDATE_LOAN_BALANCE", "loan", loan.ID, c.ClientIP(),
			map[string]interface{}{"current_balance": *req.CurrentBalance})
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// DeleteLoan handles deleting a loan.
// @Summary     Delete loan
// @Description Delete a loan for the authenticated household
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     204 "Loan deleted"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.loanService.DeleteLoan(householdID, loanID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_LOAN", "loan", loanID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetSchedule returns the loan's full amortization schedule.
// @Summary     Get amortization schedule
// @Description Get the loan's full amortization schedule from its original terms
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     200 {array} finance.ScheduleEntry "Amortization schedule"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/schedule [get]
func (h *LoanHandler) GetSchedule(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.loanService.GetSchedule(householdID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// GetProjection returns the loan's payoff projection with extra-payment rules.
// @Summary     Get payoff projection
// @Description Get the loan's projected schedule with all extra-payment rules applied, including interest and months saved
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     200 {object} finance.Projection "Payoff projection"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/projection [get]
func (h *LoanHandler) GetProjection(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	projection, err := h.loanService.ProjectLoan(householdID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": projection})
}

// RecordPayment records a payment against a loan.
// @Summary     Record a payment
// @Description Record a payment against a loan; the amount is split into principal and interest and the balance is decremented
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Loan ID"
// @Param       request body RecordPaymentRequest true "Payment details"
// @Success     201 {object} models.LoanPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/payments [post]
func (h *LoanHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format"))
		return
	}

	payment, err := h.loanService.RecordPayment(householdID, loanID, date, req.Amount, models.PaymentType(req.Type), req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_PAYMENT", "loan_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"loan_id": loanID, "amount": req.Amount, "type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetPayments returns a loan's payment ledger.
// @Summary     Get loan payments
// @Description Get a paginated list of payments recorded against a loan, most recent first
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Loan ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.LoanPayment] "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/payments [get]
func (h *LoanHandler) GetPayments(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.loanService.GetLoanPayments(householdID, loanID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePayment removes a payment and restores its principal to the balance.
// @Summary     Delete payment
// @Description Delete a recorded payment; its principal portion is restored to the loan balance
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path string true "Loan ID"
// @Param       paymentId path string true "Payment ID"
// @Success     204 "Payment deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/payments/{paymentId} [delete]
func (h *LoanHandler) DeletePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "paymentId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.loanService.DeletePayment(householdID, loanID, paymentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYMENT", "loan_payment", paymentID, c.ClientIP(),
		map[string]interface{}{"loan_id": loanID})

	c.Status(http.StatusNoContent)
}

// CreateExtraRule attaches an extra-payment rule to a loan.
// @Summary     Create extra-payment rule
// @Description Attach a recurring extra-payment rule to a loan; rules only shape projections
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Loan ID"
// @Param       request body CreateExtraRuleRequest true "Rule details"
// @Success     201 {object} models.ExtraPaymentRule "Rule created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/extra-payments [post]
func (h *LoanHandler) CreateExtraRule(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExtraRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format"))
		return
	}

	rule, err := h.loanService.CreateExtraRule(householdID, loanID, req.Amount, models.ExtraPaymentFrequency(req.Frequency), startDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// GetExtraRules returns all extra-payment rules for a loan.
// @Summary     Get extra-payment rules
// @Description Get all extra-payment rules attached to a loan
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     200 {array} models.ExtraPaymentRule "Extra-payment rules"
// @Failure     400 {object} ErrorResponse "Invalid loan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/extra-payments [get]
func (h *LoanHandler) GetExtraRules(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rules, err := h.loanService.GetExtraRules(householdID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// DeleteExtraRule removes an extra-payment rule from a loan.
// @Summary     Delete extra-payment rule
// @Description Remove an extra-payment rule; future projections no longer include it
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id     path string true "Loan ID"
// @Param       ruleId path string true "Rule ID"
// @Success     204 "Rule deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/extra-payments/{ruleId} [delete]
func (h *LoanHandler) DeleteExtraRule(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loanID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ruleID, err := parsePathID(c, "ruleId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.loanService.DeleteExtraRule(householdID, loanID, ruleID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
