package models

// User represents the user model in the database
type User struct {
	Base
	Name              string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Password          string `gorm:"not null" json:"-"`
	DefaultCurrencyID *uint  `json:"default_currency_id,omitempty"`

	// Relationships
	DefaultCurrency *Currency `gorm:"foreignKey:DefaultCurrencyID" json:"default_currency,omitempty"`
	Records         []Record  `gorm:"foreignKey:UserID" json:"records,omitempty"`
}
