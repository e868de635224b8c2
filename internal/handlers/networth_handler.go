package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/finance"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/services"
)

// NetWorthHandler handles net worth summary, trend, and forecast requests.
type NetWorthHandler struct {
	snapshotService services.SnapshotServicer
}

// NewNetWorthHandler creates a new NetWorthHandler.
func NewNetWorthHandler(snapshotService services.SnapshotServicer) *NetWorthHandler {
	return &NetWorthHandler{snapshotService: snapshotService}
}

// windowQuery represents the window query parameter shared by trend and
// forecast endpoints.
type windowQuery struct {
	Window string `form:"window" binding:"omitempty,trend_window"`
}

func (q windowQuery) window() finance.Window {
	if q.Window == "" {
		return finance.WindowAll
	}
	return finance.Window(q.Window)
}

// GetSummary returns the household's live net worth breakdown.
// @Summary     Get net worth summary
// @Description Get the household's current net worth computed from live balances
// @Tags        networth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.NetWorthTotals "Net worth breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networth [get]
func (h *NetWorthHandler) GetSummary(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.snapshotService.ComputeTotals(householdID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// RecordSnapshot records today's snapshot for the household.
// @Summary     Record a snapshot
// @Description Compute current totals and record them as today's snapshot; a second call on the same day overwrites the first
// @Tags        networth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} models.Snapshot "Snapshot recorded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networth/snapshots [post]
func (h *NetWorthHandler) RecordSnapshot(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.snapshotService.Upsert(householdID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"snapshot": snapshot})
}

// GetSnapshots returns the household's snapshot history.
// @Summary     Get snapshot history
// @Description Get a paginated list of recorded snapshots, most recent first
// @Tags        networth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Snapshot] "Paginated snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networth/snapshots [get]
func (h *NetWorthHandler) GetSnapshots(c *gin.Context) {
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

	result, err := h.snapshotService.GetSnapshots(householdID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTrend returns the household's net worth history within a window.
// @Summary     Get net worth trend
// @Description Get the household's net worth history inside the selected display window, oldest first
// @Tags        networth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       window query string false "Display window: 1m, 3m, 6m, 1y, or all (default all)"
// @Success     200 {array} services.TrendPoint "Trend series"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networth/trend [get]
func (h *NetWorthHandler) GetTrend(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	points, err := h.snapshotService.Trend(householdID, q.window())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": points})
}

// GetForecast returns the household's projected net worth.
// @Summary     Get net worth forecast
// @Description Project the household's net worth forward from its latest snapshot at the configured growth rate; the horizon scales with the window
// @Tags        networth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       window query string false "Display window: 1m, 3m, 6m, 1y, or all (default all)"
// @Success     200 {array} finance.ForecastPoint "Forecast series"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networth/forecast [get]
func (h *NetWorthHandler) GetForecast(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	points, err := h.snapshotService.Forecast(householdID, q.window())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": points})
}
