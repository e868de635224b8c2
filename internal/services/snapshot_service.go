package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/finance"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/logger"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
)

// snapshotService handles net worth aggregation, history, and forecasting.
type snapshotService struct {
	db         *gorm.DB
	growthRate float64
}

// NewSnapshotService creates a new SnapshotServicer. growthRate is the
// assumed annual growth percentage used by forecasts.
func NewSnapshotService(db *gorm.DB, growthRate float64) SnapshotServicer {
	return &snapshotService{db: db, growthRate: growthRate}
}

// ComputeTotals calculates the household's live net worth breakdown from
// current balances. The home value is derived from the purchase price
// compounded at the appreciation rate through today.
func (s *snapshotService) ComputeTotals(householdID string) (*NetWorthTotals, error) {
	var household models.Household
	if err := s.db.Where("id = ?", householdID).First(&household).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bankBalance float64
	if err := s.db.Model(&models.Account{}).
		Where("household_id = ?", householdID).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&bankBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investmentTotal float64
	if err := s.db.Model(&models.Investment{}).
		Where("household_id = ?", householdID).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&investmentTotal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var loanBalance float64
	if err := s.db.Model(&models.Loan{}).
		Where("household_id = ?", householdID).
		Select("COALESCE(SUM(current_balance), 0)").
		Scan(&loanBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var homeValue float64
	if household.HasHome() {
		homeValue = finance.HomeValue(*household.HomePurchasePrice, *household.HomePurchaseDate, household.HomeAppreciationRate, time.Now())
	}

	return &NetWorthTotals{
		TotalBankBalance: finance.Round2(bankBalance),
		TotalInvestments: finance.Round2(investmentTotal),
		HomeValue:        homeValue,
		MortgageBalance:  finance.Round2(loanBalance),
		NetWorth:         finance.Round2(bankBalance + investmentTotal + homeValue - loanBalance),
	}, nil
}

// Upsert computes the household's current totals and records them as the
// snapshot for the day containing asOf. At most one snapshot exists per
// household per day: a second call within the same day overwrites the first.
func (s *snapshotService) Upsert(householdID string, asOf time.Time) (*models.Snapshot, error) {
	totals, err := s.ComputeTotals(householdID)
	if err != nil {
		return nil, err
	}

	day := midnight(asOf)

	var existing models.Snapshot
	result := s.db.Where("household_id = ? AND date = ?", householdID, day).First(&existing)
	if result.Error == nil {
		// Already exists, update it
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"total_bank_balance": totals.TotalBankBalance,
			"total_investments":  totals.TotalInvestments,
			"home_value":         totals.HomeValue,
			"mortgage_balance":   totals.MortgageBalance,
			"net_worth":          totals.NetWorth,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		existing.TotalBankBalance = totals.TotalBankBalance
		existing.TotalInvestments = totals.TotalInvestments
		existing.HomeValue = totals.HomeValue
		existing.MortgageBalance = totals.MortgageBalance
		existing.NetWorth = totals.NetWorth
		return &existing, nil
	}

	snapshot := &models.Snapshot{
		HouseholdID:      householdID,
		Date:             day,
		TotalBankBalance: totals.TotalBankBalance,
		TotalInvestments: totals.TotalInvestments,
		HomeValue:        totals.HomeValue,
		MortgageBalance:  totals.MortgageBalance,
		NetWorth:         totals.NetWorth,
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snapshot, nil
}

// Refresh updates today's snapshot after a balance-affecting change. Errors
// are logged but never propagate to avoid disrupting the main operation.
func (s *snapshotService) Refresh(householdID string) {
	if _, err := s.Upsert(householdID, time.Now()); err != nil {
		logger.Get().Errorw("failed to refresh net worth snapshot",
			"error", err,
			"household_id", householdID,
		)
	}
}

// Trend returns the household's net worth history within the window, oldest
// first. A household with no recorded snapshots gets a single live point so
// charts always have something to draw.
func (s *snapshotService) Trend(householdID string, window finance.Window) ([]TrendPoint, error) {
	query := s.db.Model(&models.Snapshot{}).Where("household_id = ?", householdID)
	if d := window.Duration(); d > 0 {
		query = query.Where("date >= ?", midnight(time.Now().Add(-d)))
	}

	var snapshots []models.Snapshot
	if err := query.Order("date ASC").Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(snapshots) == 0 {
		totals, err := s.ComputeTotals(householdID)
		if err != nil {
			return nil, err
		}
		return []TrendPoint{{
			Date:             midnight(time.Now()),
			NetWorth:         totals.NetWorth,
			TotalBankBalance: totals.TotalBankBalance,
			TotalInvestments: totals.TotalInvestments,
			HomeEquity:       finance.Round2(totals.HomeValue - totals.MortgageBalance),
		}}, nil
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for _, snap := range snapshots {
		points = append(points, TrendPoint{
			Date:             snap.Date,
			NetWorth:         snap.NetWorth,
			TotalBankBalance: snap.TotalBankBalance,
			TotalInvestments: snap.TotalInvestments,
			HomeEquity:       finance.Round2(snap.HomeValue - snap.MortgageBalance),
		})
	}
	return points, nil
}

// Forecast projects the household's net worth forward from its latest
// snapshot. The horizon scales with the requested window so short views get
// short forecasts.
func (s *snapshotService) Forecast(householdID string, window finance.Window) ([]finance.ForecastPoint, error) {
	seed, err := s.forecastSeed(householdID)
	if err != nil {
		return nil, err
	}

	horizon := finance.HorizonForWindow(window)
	return finance.Forecast(seed, horizon, s.growthRate), nil
}

// forecastSeed finds the starting point for a forecast: the latest snapshot,
// or the live totals when none exist yet.
func (s *snapshotService) forecastSeed(householdID string) (finance.ForecastSeed, error) {
	var latest models.Snapshot
	result := s.db.Where("household_id = ?", householdID).Order("date DESC").First(&latest)
	if result.Error == nil {
		return finance.ForecastSeed{Date: latest.Date, NetWorth: latest.NetWorth}, nil
	}

	totals, err := s.ComputeTotals(householdID)
	if err != nil {
		return finance.ForecastSeed{}, err
	}
	return finance.ForecastSeed{Date: midnight(time.Now()), NetWorth: totals.NetWorth}, nil
}

// GetSnapshots returns paginated snapshots for a household, most recent first.
func (s *snapshotService) GetSnapshots(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Snapshot{}).Where("household_id = ?", householdID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.Snapshot
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// midnight normalizes a time to the start of its calendar day. Snapshots are
// keyed on the day in server-local time.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
