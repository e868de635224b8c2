package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/services"
)

// InvestmentHandler handles investment requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for creating an investment.
type CreateInvestmentRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=100"`
	Type    string  `json:"type" binding:"required,investment_type"`
	Balance float64 `json:"balance" binding:"gte=0"`
	Notes   string  `json:"notes" binding:"max=500"`
}

// UpdateInvestmentRequest represents the request payload for updating an investment.
type UpdateInvestmentRequest struct {
	Name    *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Notes   *string  `json:"notes" binding:"omitempty,max=500"`
	Balance *float64 `json:"balance" binding:"omitempty,gte=0"`
}

// CreateInvestment handles the creation of a new investment position
// @Summary     Create an investment
// @Description Create a new investment position for the authenticated household
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
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

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(
		householdID,
		req.Name,
		models.InvestmentType(req.Type),
		req.Balance,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "balance": req.Balance})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles the retrieval of investments for a household
// @Summary     Get household investments
// @Description Get a paginated list of investments for the authenticated household
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
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

	result, err := h.investmentService.GetHouseholdInvestments(householdID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestmentByID handles the retrieval of a specific investment
// @Summary     Get investment by ID
// @Description Get a specific investment by ID for the authenticated household
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment details"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestmentByID(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(householdID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateInvestment handles updating an investment's name, notes, or balance.
// @Summary     Update investment
// @Description Update an existing investment for the authenticated household
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
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

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(householdID, investmentID, req.Name, req.Notes, req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.Balance != nil {
		h.auditService.Log(userID, "UPDATE_INVESTMENT_BALANCE", "investment", investment.ID, c.ClientIP(),
			map[string]interface{}{"balance": *req.Balance})
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles deleting an investment.
// @Summary     Delete investment
// @Description Delete an investment for the authenticated household
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     204 "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
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

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(householdID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
