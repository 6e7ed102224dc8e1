package database

import (
	"fmt"

	"tally/internal/dates"
	"tally/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database operations
type Manager struct {
	db   *gorm.DB
	path string
}

// NewManager creates a new database manager. The store is a single SQLite
// file opened over one connection; the design assumes a single active
// writer per process.
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &Manager{db: db, path: config.Path}, nil
}

// RunMigrations applies pending SQL migrations from the migrations/ directory.
// The applied version is tracked by the schema_migrations marker, so re-running
// against a store already at the target schema is a no-op.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", "sqlite3://"+m.path)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// NormalizeLegacyDates rewrites transaction dates stored as bare text in
// the legacy DD-MM-YYYY layout (or YYYY-MM-DD) into native date values.
// Rows matching neither layout are left untouched rather than failed, to
// avoid discarding data. Once every date is a native value the routine
// finds no candidates and performs no writes.
func (m *Manager) NormalizeLegacyDates() error {
	log := logger.Get()

	type row struct {
		ID   uint
		Date string
	}
	var rows []row
	// Bare 10-character strings are legacy dates; native values carry a
	// time component.
	if err := m.db.Raw(
		`SELECT id, date FROM transactions WHERE typeof(date) = 'text' AND length(date) = 10`,
	).Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to scan legacy dates: %w", err)
	}

	normalized := 0
	for _, r := range rows {
		parsed, err := dates.ParseLedgerDate(r.Date)
		if err != nil {
			// Accepted compromise: skip rather than drop the row.
			log.Warnw("skipping unparseable legacy date", "id", r.ID, "date", r.Date)
			continue
		}
		if err := m.db.Exec(
			`UPDATE transactions SET date = ? WHERE id = ?`, parsed.UTC(), r.ID,
		).Error; err != nil {
			return fmt.Errorf("failed to normalize date for row %d: %w", r.ID, err)
		}
		normalized++
	}

	if normalized > 0 {
		log.Infow("normalized legacy transaction dates", "rows", normalized)
	}
	return nil
}

// Ping verifies the underlying store is reachable.
func (m *Manager) Ping() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
