package database

import (
	"fmt"

	"sagra/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured driver, applies pending migrations and seeds the
// phase catalog when it is empty.
func Open(cfg config.DBConfig, log *logrus.Logger, logLevel logger.LogLevel) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = NewSQLiteConnection(cfg.Path, log, logLevel)
	case config.DriverPostgres:
		db, err = NewPostgresConnection(cfg, log, logLevel)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, cfg.Driver); err != nil {
		Close(db)
		return nil, err
	}

	if _, err := SeedPhases(db, log); err != nil {
		Close(db)
		return nil, err
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	closeDB(db)
}
