package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned by stores when a target record does not exist
var ErrNotFound = gorm.ErrRecordNotFound

// DB is the global database instance
var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string, logLevel logger.LogLevel) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

// AutoMigrate runs database migrations
func AutoMigrate() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&Property{},
		&ReviewCandidate{},
		&MergeAudit{},
		&CleaningSettings{},
		&CleaningRun{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// InitializeDefaults creates default records if they don't exist
func InitializeDefaults() error {
	log.Println("Initializing default database records...")

	if _, err := GetOrCreateCleaningSettings(DB); err != nil {
		return fmt.Errorf("failed to initialize cleaning settings: %w", err)
	}

	return nil
}

// GetOrCreateCleaningSettings retrieves or creates cleaning settings (singleton).
// Accepts a db parameter (rather than using the global DB) to support
// dependency injection, transaction contexts, and easier testing.
func GetOrCreateCleaningSettings(db *gorm.DB) (*CleaningSettings, error) {
	var settings CleaningSettings
	result := db.First(&settings)
	if result.Error == gorm.ErrRecordNotFound {
		settings = *NewDefaultCleaningSettings()
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
	} else if result.Error != nil {
		return nil, result.Error
	}
	return &settings, nil
}

// UpdateCleaningSettings updates cleaning settings.
// Uses Save() which handles both insert and update operations.
func UpdateCleaningSettings(db *gorm.DB, settings *CleaningSettings) error {
	return db.Save(settings).Error
}

// RecordCleaningRun persists run statistics for the history view
func RecordCleaningRun(db *gorm.DB, run *CleaningRun) error {
	return db.Create(run).Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
