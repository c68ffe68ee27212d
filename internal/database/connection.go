package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens a connection for the given driver ("postgres" or
// "sqlite"). Schema migration is left to the migrations package.
func Initialize(driver, databaseURL, logLevel string) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	// Configure GORM
	config := &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(logLevel)),
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialector.Name() == "sqlite" {
		// sqlite allows a single writer; an in-memory database also lives
		// only as long as its connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)

		// Foreign keys are off by default in sqlite and the setting is per
		// connection.
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

func dialectorFor(driver, databaseURL string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "":
		return postgres.Open(databaseURL), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(databaseURL), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}
