package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/harish-k-nagarajan/family-finance-sub000/internal/errors"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/models"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/pagination"
)

// accountService handles bank-account business logic.
type accountService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
}

// NewAccountService creates a new AccountServicer. The snapshot servicer is
// used to refresh the household's net worth after balance-affecting
// operations; it may be nil in contexts that do not track net worth.
func NewAccountService(db *gorm.DB, snapshots SnapshotServicer) AccountServicer {
	return &accountService{db: db, snapshots: snapshots}
}

// refreshSnapshot updates the household's net worth snapshot after a
// balance-affecting change. Fire-and-forget.
func (s *accountService) refreshSnapshot(householdID string) {
	if s.snapshots != nil {
		s.snapshots.Refresh(householdID)
	}
}

// CreateAccount creates a new bank account for a household
func (s *accountService) CreateAccount(householdID, name string, accountType models.AccountType, description, institution string, balance float64) (*models.Account, error) {
	// Validate input
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if balance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account balance cannot be negative")
	}

	account := &models.Account{
		HouseholdID: householdID,
		Name:        name,
		Type:        accountType,
		Description: description,
		Institution: institution,
		Balance:     balance,
		Currency:    "USD",
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.refreshSnapshot(householdID)
	return account, nil
}

// GetHouseholdAccounts retrieves a paginated list of accounts for a household.
func (s *accountService) GetHouseholdAccounts(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Account{}).Where("household_id = ?", householdID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID for a specific household
func (s *accountService) GetAccountByID(householdID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND household_id = ?", accountID, householdID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an account's name, description, or balance. Only the
// fields provided are changed.
func (s *accountService) UpdateAccount(householdID, accountID string, name, description *string, balance *float64) (*models.Account, error) {
	account, err := s.GetAccountByID(householdID, accountID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name cannot be empty")
		}
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if balance != nil {
		if *balance < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account balance cannot be negative")
		}
		updates["balance"] = *balance
	}

	if len(updates) == 0 {
		return account, nil
	}

	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if balance != nil {
		s.refreshSnapshot(householdID)
	}
	return account, nil
}

// DeleteAccount soft-deletes an account. Its balance stops counting toward
// net worth from the next snapshot onward.
func (s *accountService) DeleteAccount(householdID, accountID string) error {
	account, err := s.GetAccountByID(householdID, accountID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.refreshSnapshot(householdID)
	return nil
}
