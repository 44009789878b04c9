package models

// Category represents an expense category. Category names are not unique;
// two categories may share a name and remain distinct by ID.
type Category struct {
	Base
	Name string `gorm:"size:80;not null" json:"name"`

	// Relationships
	Records []Record `gorm:"foreignKey:CategoryID" json:"records,omitempty"`
}
