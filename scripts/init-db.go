package main

import (
	"foodcart/internal/config"
	"foodcart/internal/database"
	"foodcart/internal/migrations"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing database...")

	// Load configuration
	cfg := config.Load()

	db, err := database.Initialize(cfg.DBDriver, cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.RunMigrations(db, true); err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	logrus.Info("Database initialization completed successfully!")
}
