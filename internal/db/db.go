package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vincentcui-ui/workout-logger/internal/models"
)

// Connect opens a GORM connection for the given DSN. Postgres URLs and
// key=value DSNs go through the postgres driver; anything else is treated as a
// sqlite file path (the default for local development). Postgres connections
// are retried since the database may still be starting up.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.Trim(strings.TrimSpace(dsn), "\"'")
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty, check the environment configuration")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if !IsPostgresDSN(dsn) {
		return gorm.Open(sqlite.Open(dsn), cfg)
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}

// IsPostgresDSN reports whether the DSN targets postgres rather than a sqlite
// file path.
func IsPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	// lib/pq style key=value list
	for _, k := range []string{"host=", "user=", "dbname="} {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Migrate creates or updates the schema. When sqlMigrations is set and the
// target is postgres, versioned SQL files under ./migrations are applied via
// golang-migrate; otherwise GORM AutoMigrate keeps the schema in sync.
func Migrate(db *gorm.DB, dsn string, sqlMigrations bool) error {
	if sqlMigrations && IsPostgresDSN(dsn) {
		return runSQLMigrations(dsn)
	}
	return AutoMigrate(db)
}

// AutoMigrate runs GORM auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range []any{
		&models.User{}, &models.Exercise{}, &models.Workout{}, &models.WorkoutDetail{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using the golang-migrate
// file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Seed inserts the default exercise catalog. Idempotent: entries are keyed by
// name and only created when missing.
func Seed(db *gorm.DB) error {
	baseExercises := []models.Exercise{
		{Name: "Bench Press", Type: models.ExerciseTypeStrength},
		{Name: "Squat", Type: models.ExerciseTypeStrength},
		{Name: "Deadlift", Type: models.ExerciseTypeStrength},
		{Name: "Pull Up", Type: models.ExerciseTypeStrength},
		{Name: "Running", Type: models.ExerciseTypeCardio},
		{Name: "Cycling", Type: models.ExerciseTypeCardio},
		{Name: "Rowing", Type: models.ExerciseTypeCardio},
	}
	for _, ex := range baseExercises {
		var existing models.Exercise
		err := db.Where("name = ?", ex.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&ex).Error; err != nil {
				return fmt.Errorf("seed exercise %q: %w", ex.Name, err)
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
