package models

import "time"

// Record represents a single expense entry linking a user, category, and
// currency with an amount. Records are immutable after creation except for
// deletion. The currency is always resolved at creation time, either from
// the request or from the owning user's default currency.
type Record struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID string    `gorm:"type:uuid;not null;index" json:"category_id"`
	CurrencyID uint      `gorm:"not null" json:"currency_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
	Currency Currency `gorm:"foreignKey:CurrencyID" json:"-"`
}
