package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"storewatch/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// timestamp layouts accepted in observation exports
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999 UTC",
	"2006-01-02 15:04:05 UTC",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// IngestService bulk-loads monitoring data from CSV exports
type IngestService struct {
	db *gorm.DB
}

// NewIngestService creates a new ingest service
func NewIngestService(db *gorm.DB) *IngestService {
	return &IngestService{db: db}
}

// ImportAll loads stores, timezones, menu hours and observations from dataDir.
// Missing files are skipped so partial datasets can be loaded.
func (s *IngestService) ImportAll(dataDir string) error {
	imports := []struct {
		file string
		fn   func(string) error
	}{
		{"stores.csv", s.ImportStoresFromCSV},
		{"timezones.csv", s.ImportTimezonesFromCSV},
		{"menu_hours.csv", s.ImportMenuHoursFromCSV},
		{"store_status.csv", s.ImportObservationsFromCSV},
	}
	for _, imp := range imports {
		path := filepath.Join(dataDir, imp.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Info().Str("file", imp.file).Msg("Data file not found, skipping")
			continue
		}
		if err := imp.fn(path); err != nil {
			return fmt.Errorf("import %s: %w", imp.file, err)
		}
	}
	return nil
}

// ImportStoresFromCSV loads stores from a CSV of (id, name)
func (s *IngestService) ImportStoresFromCSV(csvPath string) error {
	records, err := readCSV(csvPath)
	if err != nil {
		return err
	}

	stores := make([]models.Store, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			continue
		}
		stores = append(stores, models.Store{ID: id, Name: strings.TrimSpace(record[1])})
	}
	return s.createInBatches(&stores, len(stores))
}

// ImportTimezonesFromCSV loads timezones from a CSV of (id, timezone_str)
func (s *IngestService) ImportTimezonesFromCSV(csvPath string) error {
	records, err := readCSV(csvPath)
	if err != nil {
		return err
	}

	timezones := make([]models.Timezone, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			continue
		}
		timezones = append(timezones, models.Timezone{ID: id, TimezoneStr: strings.TrimSpace(record[1])})
	}
	return s.createInBatches(&timezones, len(timezones))
}

// ImportMenuHoursFromCSV loads business hours from a CSV of
// (store_id, day_of_week, start_time_local, end_time_local, timezone_id);
// the timezone column may be empty.
func (s *IngestService) ImportMenuHoursFromCSV(csvPath string) error {
	records, err := readCSV(csvPath)
	if err != nil {
		return err
	}

	rows := make([]models.MenuHours, 0, len(records))
	for _, record := range records {
		if len(record) < 4 {
			continue
		}
		storeID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			continue
		}
		dayOfWeek, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
			continue
		}
		row := models.MenuHours{
			StoreID:        storeID,
			DayOfWeek:      dayOfWeek,
			StartTimeLocal: strings.TrimSpace(record[2]),
			EndTimeLocal:   strings.TrimSpace(record[3]),
		}
		if len(record) > 4 {
			if tzID, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64); err == nil {
				row.TimezoneID = &tzID
			}
		}
		rows = append(rows, row)
	}
	return s.createInBatches(&rows, len(rows))
}

// ImportObservationsFromCSV loads status observations from a CSV of
// (store_id, status, timestamp_utc)
func (s *IngestService) ImportObservationsFromCSV(csvPath string) error {
	records, err := readCSV(csvPath)
	if err != nil {
		return err
	}

	skipped := 0
	batchSize := 1000
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}

		batch := records[i:end]
		observations := make([]models.StoreStatus, 0, len(batch))
		for _, record := range batch {
			if len(record) < 3 {
				skipped++
				continue
			}
			storeID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
			if err != nil {
				skipped++
				continue
			}
			status := strings.ToLower(strings.TrimSpace(record[1]))
			if status != models.StatusActive && status != models.StatusInactive {
				skipped++
				continue
			}
			timestamp, err := parseTimestamp(strings.TrimSpace(record[2]))
			if err != nil {
				skipped++
				continue
			}
			observations = append(observations, models.StoreStatus{
				StoreID:      storeID,
				Status:       status,
				TimestampUTC: timestamp,
			})
		}

		if len(observations) > 0 {
			if err := s.db.Create(&observations).Error; err != nil {
				return fmt.Errorf("insert batch %d-%d: %w", i, end, err)
			}
		}
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Str("file", csvPath).Msg("Skipped malformed observation rows")
	}
	log.Info().Int("total", len(records)-skipped).Str("file", csvPath).Msg("Observations imported")
	return nil
}

func (s *IngestService) createInBatches(rows interface{}, count int) error {
	if count == 0 {
		return nil
	}
	return s.db.CreateInBatches(rows, 1000).Error
}

func readCSV(csvPath string) ([][]string, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	// skip header
	return records[1:], nil
}

func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}
