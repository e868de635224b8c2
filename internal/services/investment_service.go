package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
)

// investmentService handles investment business logic.
type investmentService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
}

// NewInvestmentService creates a new InvestmentServicer. The snapshot
// servicer is used to refresh the household's net worth after
// balance-affecting operations; it may be nil in contexts that do not track
// net worth.
func NewInvestmentService(db *gorm.DB, snapshots SnapshotServicer) InvestmentServicer {
	return &investmentService{db: db, snapshots: snapshots}
}

// refreshSnapshot updates the household's net worth snapshot after a
// balance-affecting change. Fire-and-forget.
func (s *investmentService) refreshSnapshot(householdID string) {
	if s.snapshots != nil {
		s.snapshots.Refresh(householdID)
	}
}

// CreateInvestment creates a new investment position for a household
func (s *investmentService) CreateInvestment(householdID, name string, investmentType models.InvestmentType, balance float64, notes string) (*models.Investment, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name is required")
	}
	if balance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment balance cannot be negative")
	}

	investment := &models.Investment{
		HouseholdID: householdID,
		Name:        name,
		Type:        investmentType,
		Balance:     balance,
		Notes:       notes,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.refreshSnapshot(householdID)

	return investment, nil
}

// GetHouseholdInvestments retrieves a paginated list of investments for a household.
func (s *investmentService) GetHouseholdInvestments(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Investment{}).Where("household_id = ?", householdID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestmentByID retrieves an investment by ID for a specific household
func (s *investmentService) GetInvestmentByID(householdID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND household_id = ?", investmentID, householdID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdateInvestment updates an investment's name, notes, or balance. Only the
// fields provided are changed.
func (s *investmentService) UpdateInvestment(householdID, investmentID string, name, notes *string, balance *float64) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(householdID, investmentID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name cannot be empty")
		}
		updates["name"] = *name
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if balance != nil {
		if *balance < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment balance cannot be negative")
		}
		updates["balance"] = *balance
	}

	if len(updates) == 0 {
		return investment, nil
	}

	if err := s.db.Model(investment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if balance != nil {
		s.refreshSnapshot(householdID)
	}

	return investment, nil
}

// DeleteInvestment soft-deletes an investment position.
func (s *investmentService) DeleteInvestment(householdID, investmentID string) error {
	investment, err := s.GetInvestmentByID(householdID, investmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.refreshSnapshot(householdID)

	return nil
}
