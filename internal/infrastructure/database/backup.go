package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sagra/config"
	"sagra/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const backupBatchSize = 200

// ErrBackupExists is returned when the backup destination is already taken.
var ErrBackupExists = errors.New("backup file already exists")

// BackupTables lists the tables copied into a backup, parents first.
var BackupTables = []string{
	entity.PhaseCatalog{}.TableName(),
	entity.Patient{}.TableName(),
	entity.Progress{}.TableName(),
	entity.AuditLog{}.TableName(),
}

// BackupToSQLite writes a standalone SQLite copy of every table of src into destPath.
// It works for both drivers, so a PostgreSQL deployment still produces a portable file.
// An existing file at destPath is never touched; ErrBackupExists is returned instead.
func BackupToSQLite(ctx context.Context, src *gorm.DB, destPath string, log *logrus.Logger) error {
	f, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrBackupExists, destPath)
		}
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := writeBackup(ctx, src, destPath, log); err != nil {
		_ = os.Remove(destPath)
		return err
	}
	return nil
}

func writeBackup(ctx context.Context, src *gorm.DB, destPath string, log *logrus.Logger) error {
	dest, err := NewSQLiteConnection(destPath, log, logger.Silent)
	if err != nil {
		return err
	}
	defer closeDB(dest)

	if err := Migrate(dest, config.DriverSQLite); err != nil {
		return err
	}

	src = src.WithContext(ctx)
	return dest.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var phases []entity.PhaseCatalog
		if err := src.Order("id").Find(&phases).Error; err != nil {
			return fmt.Errorf("read phases: %w", err)
		}
		if err := copyRows(tx, phases); err != nil {
			return err
		}

		var patients []entity.Patient
		if err := src.Order("id").Find(&patients).Error; err != nil {
			return fmt.Errorf("read patients: %w", err)
		}
		if err := copyRows(tx, patients); err != nil {
			return err
		}

		var progress []entity.Progress
		if err := src.Order("id").Find(&progress).Error; err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		if err := copyRows(tx, progress); err != nil {
			return err
		}

		var auditLogs []entity.AuditLog
		if err := src.Order("id").Find(&auditLogs).Error; err != nil {
			return fmt.Errorf("read audit logs: %w", err)
		}
		return copyRows(tx, auditLogs)
	})
}

func copyRows[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).CreateInBatches(&rows, backupBatchSize).Error; err != nil {
		return fmt.Errorf("copy rows: %w", err)
	}
	return nil
}
