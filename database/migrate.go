package database

import (
	"fmt"

	"mediconnect_backend/internal/config"
	"mediconnect_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the GORM connection. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey in the repositories.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension present.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PharmacistProfile{},
		&models.StoreProfile{},
		&models.Job{},
		&models.JobApplication{},
		&models.TrainingSlot{},
		&models.TrainingRequest{},
	)
}
