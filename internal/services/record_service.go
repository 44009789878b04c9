package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
	"spendlog/internal/pagination"
)

// recordService handles expense-record business logic.
type recordService struct {
	db *gorm.DB
}

// NewRecordService creates a new RecordServicer.
func NewRecordService(db *gorm.DB) RecordServicer {
	return &recordService{db: db}
}

// CreateRecord validates the referenced user and category, resolves the
// record's currency, and persists the record with a server-assigned
// timestamp. When currencyID is nil the owning user's default currency is
// used; a user without a default currency cannot create a record without
// naming one explicitly.
func (s *recordService) CreateRecord(userID, categoryID string, amount float64, currencyID *uint) (*models.Record, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resolvedCurrencyID, err := s.resolveCurrency(&user, currencyID)
	if err != nil {
		return nil, err
	}

	record := &models.Record{
		UserID:     userID,
		CategoryID: categoryID,
		CurrencyID: resolvedCurrencyID,
		Amount:     amount,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return record, nil
}

// resolveCurrency returns the currency ID a new record should carry: the
// explicit one when supplied (which must exist), otherwise the user's default.
func (s *recordService) resolveCurrency(user *models.User, currencyID *uint) (uint, error) {
	if currencyID != nil {
		var currency models.Currency
		if err := s.db.First(&currency, *currencyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperrors.ErrCurrencyNotFound
			}
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return currency.ID, nil
	}

	if user.DefaultCurrencyID == nil {
		return 0, apperrors.ErrNoDefaultCurrency
	}
	return *user.DefaultCurrencyID, nil
}

// GetRecordByID retrieves a record by ID.
func (s *recordService) GetRecordByID(id string) (*models.Record, error) {
	var record models.Record
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

// DeleteRecord deletes a record.
func (s *recordService) DeleteRecord(id string) error {
	record, err := s.GetRecordByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListRecords retrieves a paginated list of records matching all supplied
// filters. With no filters it returns every record.
func (s *recordService) ListRecords(filter RecordFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Record], error) {
	page.Defaults()

	base := s.db.Model(&models.Record{})
	if filter.UserID != nil {
		base = base.Where("user_id = ?", *filter.UserID)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.Record
	if err := base.Scopes(pagination.Paginate(page)).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(records, page.Page, page.PageSize, totalItems)
	return &result, nil
}
