package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/services"
)

// AccountHandler handles bank-account requests.
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Type        string  `json:"type" binding:"required,account_type"`
	Description string  `json:"description" binding:"max=500"`
	Institution string  `json:"institution" binding:"max=100"`
	Balance     float64 `json:"balance" binding:"gte=0"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Balance     *float64 `json:"balance" binding:"omitempty,gte=0"`
}

// AccountResponse represents an account in the response
type AccountResponse struct {
	ID          string             `json:"id"`
	HouseholdID string             `json:"household_id"`
	Name        string             `json:"name"`
	Type        models.AccountType `json:"type"`
	Description string             `json:"description"`
	Balance     float64            `json:"balance"`
	Currency    string             `json:"currency"`
}

// CreateAccount handles the creation of a new bank account
// @Summary     Create an account
// @Description Create a new bank account for the authenticated household
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} AccountResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
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

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(
		householdID,
		req.Name,
		models.AccountType(req.Type),
		req.Description,
		req.Institution,
		req.Balance,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ACCOUNT", "account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "balance": req.Balance})

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts handles the retrieval of accounts for a household
// @Summary     Get household accounts
// @Description Get a paginated list of accounts for the authenticated household
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Account] "Paginated accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
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

	result, err := h.accountService.GetHouseholdAccounts(householdID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountByID handles the retrieval of a specific account
// @Summary     Get account by ID
// @Description Get a specific account by ID for the authenticated household
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} AccountResponse "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(householdID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount handles updating an account's name, description, or balance.
// @Summary     Update account
// @Description Update an existing account for the authenticated household
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} AccountResponse "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
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

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(householdID, accountID, req.Name, req.Description, req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.Balance != nil {
		h.auditService.Log(userID, "UPDATE_ACCOUNT_BALANCE", "account", account.ID, c.ClientIP(),
			map[string]interface{}{"balance": *req.Balance})
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount handles deleting an account.
// @Summary     Delete account
// @Description Delete an account for the authenticated household
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     204 "Account deleted"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
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

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(householdID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ACCOUNT", "account", accountID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
