package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tally/internal/dates"
	"tally/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates a transaction with a generated item name.
// Amount is in cents.
func CreateTestTransaction(t *testing.T, db *gorm.DB, kind models.TransactionKind, amount int64, date time.Time, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionWithTags(t, db, kind, amount, date, category, nil)
}

// CreateTestTransactionWithTags creates a transaction carrying the given tags.
func CreateTestTransactionWithTags(t *testing.T, db *gorm.DB, kind models.TransactionKind, amount int64, date time.Time, category string, tagNames []string) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Item:      fmt.Sprintf("Test Item %d", nextID()),
		Quantity:  1,
		Category:  category,
		Date:      dates.Truncate(date),
		Kind:      kind,
		StoreName: "Test Store",
		Amount:    amount,
	}
	for _, name := range tagNames {
		var tag models.Tag
		if err := db.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			t.Fatalf("failed to create test tag %q: %v", name, err)
		}
		transaction.Tags = append(transaction.Tags, tag)
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestNote creates a note on the given date with the default color.
func CreateTestNote(t *testing.T, db *gorm.DB, date time.Time, text string) *models.Note {
	t.Helper()

	note := &models.Note{
		Date:  dates.Truncate(date),
		Text:  text,
		Color: models.DefaultNoteColor,
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}
