package main

import (
	"budget_tracker/internal/config"  // Custom import path (Config)
	"budget_tracker/internal/db"      // Custom import path (Database)
	"budget_tracker/internal/logging" // Custom import path (Logger setup)
	"budget_tracker/internal/store"   // Custom import path (Sessions)
	"context"                         // Purge call
	"os"                              // Log output

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logging.Setup(cfg, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration

	purged, err := store.NewSessions(gdb).PurgeExpired(context.Background())
	if err != nil {
		logrus.Fatalf("failed to purge sessions: %v", err)
	}
	logrus.WithField("sessions", purged).Info("Expired sessions purged")
}
