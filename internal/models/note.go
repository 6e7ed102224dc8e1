package models

import "time"

// DefaultNoteColor is applied when a note is created without a color.
const DefaultNoteColor = "#3DD56D"

// Note is a calendar annotation, independent of transactions. Many notes
// may share a date.
type Note struct {
	Base
	Date  time.Time `gorm:"not null;index" json:"date"`
	Text  string    `gorm:"not null" json:"text"`
	Color string    `gorm:"not null;default:'#3DD56D'" json:"color"`
}
