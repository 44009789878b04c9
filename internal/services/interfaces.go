package services

import (
	"spendlog/internal/models"
	"spendlog/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, password string, defaultCurrencyID *uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetUserByID(id string) (*models.User, error)
	DeleteUser(id string) error
	Authenticate(name, password string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CurrencyServicer defines the contract for currency-related business logic.
type CurrencyServicer interface {
	CreateCurrency(name string) (*models.Currency, error)
	GetCurrencies() ([]models.Currency, error)
	GetCurrencyByID(id uint) (*models.Currency, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	DeleteCategory(id string) error
}

// RecordFilter holds optional filter parameters for listing records.
// Supplied filters combine with logical AND.
type RecordFilter struct {
	UserID     *string
	CategoryID *string
}

// RecordServicer defines the contract for expense-record business logic.
type RecordServicer interface {
	CreateRecord(userID, categoryID string, amount float64, currencyID *uint) (*models.Record, error)
	GetRecordByID(id string) (*models.Record, error)
	DeleteRecord(id string) error
	ListRecords(filter RecordFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Record], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
