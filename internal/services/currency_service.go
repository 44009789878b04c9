package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

// currencyService handles currency-related business logic.
type currencyService struct {
	db *gorm.DB
}

// NewCurrencyService creates a new CurrencyServicer.
func NewCurrencyService(db *gorm.DB) CurrencyServicer {
	return &currencyService{db: db}
}

// CreateCurrency registers a new currency code. Codes are stored uppercase
// and must be unique; the unique index on name is the authority on
// duplicates, so even a concurrent duplicate registration gets a Conflict.
func (s *currencyService) CreateCurrency(name string) (*models.Currency, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency name is required")
	}
	name = strings.ToUpper(name)

	currency := &models.Currency{Name: name}
	if err := s.db.Create(currency).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCurrency
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return currency, nil
}

// GetCurrencies retrieves all registered currencies.
func (s *currencyService) GetCurrencies() ([]models.Currency, error) {
	var currencies []models.Currency
	if err := s.db.Find(&currencies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currencies, nil
}

// GetCurrencyByID retrieves a currency by its integer ID.
func (s *currencyService) GetCurrencyByID(id uint) (*models.Currency, error) {
	var currency models.Currency
	if err := s.db.First(&currency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCurrencyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &currency, nil
}
