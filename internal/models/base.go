package models

import "time"

// Base contains common columns for all tables. Identifiers are
// autoincrementing integers assigned by the store on creation.
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
