package repo

import (
	"testing"
	"time"

	"storewatch/pkg/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a pooled second connection would see its own empty in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestObservationLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewObservationRepository(db)

	latest, err := repo.Latest(1)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest != nil {
		t.Fatalf("Latest() = %+v, expected nil for unobserved store", latest)
	}

	base := time.Date(2023, 1, 25, 12, 0, 0, 0, time.UTC)
	rows := []models.StoreStatus{
		{StoreID: 1, TimestampUTC: base, Status: models.StatusActive},
		{StoreID: 1, TimestampUTC: base.Add(time.Hour), Status: models.StatusInactive},
		{StoreID: 2, TimestampUTC: base.Add(2 * time.Hour), Status: models.StatusActive},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	latest, err = repo.Latest(1)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest == nil || !latest.TimestampUTC.Equal(base.Add(time.Hour)) {
		t.Errorf("Latest() = %+v, expected observation at %v", latest, base.Add(time.Hour))
	}
	if latest.Status != models.StatusInactive {
		t.Errorf("Latest() status = %q, expected %q", latest.Status, models.StatusInactive)
	}
}

func TestObservationInRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewObservationRepository(db)

	base := time.Date(2023, 1, 25, 12, 0, 0, 0, time.UTC)
	rows := []models.StoreStatus{
		{StoreID: 1, TimestampUTC: base.Add(-time.Hour), Status: models.StatusActive},
		{StoreID: 1, TimestampUTC: base, Status: models.StatusInactive},
		{StoreID: 1, TimestampUTC: base.Add(30 * time.Minute), Status: models.StatusActive},
		{StoreID: 1, TimestampUTC: base.Add(time.Hour), Status: models.StatusActive},
		{StoreID: 2, TimestampUTC: base, Status: models.StatusActive},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	observations, err := repo.InRange(1, base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("InRange() error = %v", err)
	}
	if len(observations) != 3 {
		t.Fatalf("InRange() returned %d observations, expected 3 (bounds inclusive)", len(observations))
	}
	for i := 1; i < len(observations); i++ {
		if observations[i].TimestampUTC.Before(observations[i-1].TimestampUTC) {
			t.Errorf("observations out of order at index %d", i)
		}
	}

	empty, err := repo.InRange(1, base.Add(24*time.Hour), base.Add(25*time.Hour))
	if err != nil {
		t.Fatalf("InRange() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("InRange() on empty span returned %d observations", len(empty))
	}
}

func TestScheduleTimezoneFor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db)

	// unconfigured store falls back to the default
	timezone, err := repo.TimezoneFor(1)
	if err != nil {
		t.Fatalf("TimezoneFor() error = %v", err)
	}
	if timezone != models.DefaultTimezone {
		t.Errorf("TimezoneFor() = %q, expected default %q", timezone, models.DefaultTimezone)
	}

	tz := models.Timezone{TimezoneStr: "America/Denver"}
	if err := db.Create(&tz).Error; err != nil {
		t.Fatalf("seed timezone: %v", err)
	}
	row := models.MenuHours{StoreID: 1, DayOfWeek: 1, StartTimeLocal: "09:00:00", EndTimeLocal: "17:00:00", TimezoneID: &tz.ID}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed menu hours: %v", err)
	}

	timezone, err = repo.TimezoneFor(1)
	if err != nil {
		t.Fatalf("TimezoneFor() error = %v", err)
	}
	if timezone != "America/Denver" {
		t.Errorf("TimezoneFor() = %q, expected America/Denver", timezone)
	}
}

func TestScheduleHoursFor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db)

	rows := []models.MenuHours{
		{StoreID: 1, DayOfWeek: 3, StartTimeLocal: "09:00:00", EndTimeLocal: "17:00:00"},
		{StoreID: 1, DayOfWeek: 1, StartTimeLocal: "10:00:00", EndTimeLocal: "16:00:00"},
		{StoreID: 2, DayOfWeek: 1, StartTimeLocal: "08:00:00", EndTimeLocal: "20:00:00"},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.HoursFor(1)
	if err != nil {
		t.Fatalf("HoursFor() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("HoursFor() returned %d rows, expected 2", len(got))
	}
	if got[0].DayOfWeek != 1 || got[1].DayOfWeek != 3 {
		t.Errorf("HoursFor() not ordered by weekday: %+v", got)
	}
}

func TestReportLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	report := &models.UptimeReport{StoreID: 1, Status: models.ReportPending}
	if err := repo.Create(report); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if report.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("Create() did not assign a report ID")
	}

	report.Status = models.ReportCompleted
	report.UptimeLastHour = 1800
	if err := repo.Update(report); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(report.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != models.ReportCompleted || got.UptimeLastHour != 1800 {
		t.Errorf("GetByID() = %+v, expected completed report with 1800s uptime", got)
	}
}
