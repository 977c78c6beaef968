package database

import (
	"fmt"
	"sync"

	"sagra/config"
	"sagra/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// goose keeps its dialect and filesystem in package state
var gooseMu sync.Mutex

// Migrate applies all pending migrations for the given driver.
func Migrate(db *gorm.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case config.DriverSQLite:
		dialect, dir = "sqlite3", migrations.SQLiteDir
	case config.DriverPostgres:
		dialect, dir = "postgres", migrations.PostgresDir
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	// Disable goose's default logging to avoid stdout noise
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
