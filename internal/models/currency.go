package models

// Currency represents a supported currency. Currencies are registered once
// and never updated or deleted; both users (as a default) and records
// reference them by integer ID.
type Currency struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:3;uniqueIndex;not null" json:"name"`
}
