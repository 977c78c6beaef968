package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == MemoryPath {
		return "file::memory:?" + pragmas
	}
	return fmt.Sprintf("file:%s?%s", path, pragmas)
}

// NewSQLiteConnection opens the database file at path, creating it when missing.
// A file that exists but is not a readable database is removed and recreated empty.
func NewSQLiteConnection(path string, log *logrus.Logger, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := openSQLite(path, logLevel)
	if err == nil {
		if err = checkIntegrity(db); err != nil {
			closeDB(db)
		}
	}

	if err != nil {
		if path == MemoryPath || !fileExists(path) {
			return nil, err
		}
		log.Warnf("Database file %s is corrupt, recreating it: %+v", path, err)
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to remove corrupt database file: %w", err)
		}
		if db, err = openSQLite(path, logLevel); err != nil {
			return nil, err
		}
	}

	log.Infof("Successfully opened SQLite database %s", path)

	return db, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

func openSQLite(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        sqliteDSN(path),
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite allows a single writer; an in-memory database lives in its only connection
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func checkIntegrity(db *gorm.DB) error {
	var result string
	if err := db.Raw("PRAGMA quick_check").Scan(&result).Error; err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check returned %q", result)
	}
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
