package database

import (
	"fmt"

	"github.com/ombreaffaire/authsvc/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection with production-ready settings.
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the repositories rely on to turn racing
// inserts into conflicts instead of duplicate rows.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// OpenSQLite opens a SQLite database with the same settings. Used by the
// dbcheck tool and the test suites so they run without a Postgres server.
func OpenSQLite(path string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection; cap the pool at one so
	// every query sees the same data.
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// AutoMigrate creates the account tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBEmailOTP{},
		&repositories.DBPasswordReset{},
	); err != nil {
		return fmt.Errorf("failed to migrate account tables: %w", err)
	}
	return nil
}
