package db

import (
	"budget_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Transaction{}, &domain.Session{}); err != nil {
		return err
	}
	logrus.Debug("Migration completed.") // Log successful migration
	return nil
}
