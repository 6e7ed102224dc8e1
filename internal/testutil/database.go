// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"tally/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
// AutoMigrate also creates the transaction_tags join table.
var allModels = []interface{}{
	&models.Category{},
	&models.Tag{},
	&models.Transaction{},
	&models.Note{},
	&models.BalanceSnapshot{},
	&models.Loan{},
	&models.Saving{},
}

// SetupTestDB creates an in-memory SQLite database with all models migrated
// and the category seed list inserted.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for _, name := range models.SeedCategories {
		if err := db.Where("name = ?", name).FirstOrCreate(&models.Category{}, models.Category{Name: name}).Error; err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
