package models

// Tag is a free-text label attached to transactions. A transaction may
// carry any number of tags; aggregation attributes the full transaction
// amount to every tag it carries.
type Tag struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
