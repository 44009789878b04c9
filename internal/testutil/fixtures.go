package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendlog/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// currencyCodes is cycled through to keep fixture currency names unique.
var currencyCodes = []string{
	"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD", "SEK", "NOK", "DKK",
	"PLN", "CZK", "HUF", "SGD", "HKD", "NZD", "MXN", "BRL", "ZAR", "INR",
}

// CreateTestCurrency creates a currency with a unique ISO code.
func CreateTestCurrency(t *testing.T, db *gorm.DB) *models.Currency {
	t.Helper()
	code := currencyCodes[int(nextID())%len(currencyCodes)]
	return CreateTestCurrencyWithName(t, db, code)
}

// CreateTestCurrencyWithName creates a currency with the given code.
func CreateTestCurrencyWithName(t *testing.T, db *gorm.DB, name string) *models.Currency {
	t.Helper()

	currency := &models.Currency{Name: name}
	if err := db.Create(currency).Error; err != nil {
		t.Fatalf("failed to create test currency: %v", err)
	}
	return currency
}

// CreateTestUser creates a user with a hashed password and unique name.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	name := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithName(t, db, name)
}

// CreateTestUserWithName creates a user with the given name and no default currency.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	return createUser(t, db, name, nil)
}

// CreateTestUserWithDefaultCurrency creates a user whose records fall back to
// the given currency.
func CreateTestUserWithDefaultCurrency(t *testing.T, db *gorm.DB, currencyID uint) *models.User {
	t.Helper()
	name := fmt.Sprintf("user%d", nextID())
	return createUser(t, db, name, &currencyID)
}

func createUser(t *testing.T, db *gorm.DB, name string, defaultCurrencyID *uint) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:              name,
		Password:          string(hash),
		DefaultCurrencyID: defaultCurrencyID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestRecord creates a record linking the given user, category, and currency.
func CreateTestRecord(t *testing.T, db *gorm.DB, userID, categoryID string, currencyID uint, amount float64) *models.Record {
	t.Helper()

	record := &models.Record{
		UserID:     userID,
		CategoryID: categoryID,
		CurrencyID: currencyID,
		Amount:     amount,
		Timestamp:  time.Now().UTC(),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}
	return record
}
