package db

import (
	"fmt"
	"log"
	"os"

	"storewatch/internal/services"
	"storewatch/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running GORM AutoMigrate...")

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Printf("Warning: Failed to create some custom indexes: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any custom indexes that GORM might not handle
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// Latest-observation lookup regardless of store
		`CREATE INDEX IF NOT EXISTS idx_store_statuses_timestamp ON store_statuses(timestamp_utc)`,

		// One hours row per store per weekday
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_menu_hours_store_day ON menu_hours(store_id, day_of_week)`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s - %v", idx, err)
		}
	}

	return nil
}

// SeedFromCSV loads the monitoring dataset from DATA_DIR while the
// observations table is still empty
func SeedFromCSV(db *gorm.DB) error {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.StoreStatus{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check observations count: %w", err)
	}
	if count > 0 {
		log.Printf("Observations already loaded (%d rows), skipping CSV import", count)
		return nil
	}

	log.Printf("Importing monitoring data from %s...", dataDir)
	ingest := services.NewIngestService(db)
	if err := ingest.ImportAll(dataDir); err != nil {
		return fmt.Errorf("failed to import monitoring data: %w", err)
	}

	if err := db.Model(&models.StoreStatus{}).Count(&count).Error; err == nil {
		log.Printf("Successfully imported %d observations", count)
	}
	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Println("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := SeedFromCSV(db); err != nil {
		return fmt.Errorf("CSV seeding failed: %w", err)
	}

	log.Println("All migrations completed successfully")
	return nil
}
