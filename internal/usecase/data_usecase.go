package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sagra/config"
	"sagra/internal/delivery/dto"
	"sagra/internal/delivery/http/middleware"
	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"
	"sagra/internal/infrastructure/database"
	"sagra/internal/infrastructure/spreadsheet"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"

	fileTimestampLayout = "20060102_150405"

	maxBackupAttempts = 100
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format, use xlsx or csv")
)

type DataUsecase interface {
	Export(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error)
	Backup(ctx context.Context) (*dto.BackupResponse, error)
}

type dataUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	storage      config.StorageConfig
	patientRepo  repository.PatientRepository
	progressRepo repository.ProgressRepository
	auditService service.AuditService
	now          Clock
}

func NewDataUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	storage config.StorageConfig,
	patientRepo repository.PatientRepository,
	progressRepo repository.ProgressRepository,
	auditService service.AuditService,
	now Clock,
) DataUsecase {
	if now == nil {
		now = defaultClock
	}
	return &dataUsecase{
		db:           db,
		log:          log,
		storage:      storage,
		patientRepo:  patientRepo,
		progressRepo: progressRepo,
		auditService: auditService,
		now:          now,
	}
}

// Export writes every patient and progress record to the export directory, as one
// workbook for xlsx or as a pair of files for csv.
func (u *dataUsecase) Export(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error) {
	if req.Format != ExportFormatXLSX && req.Format != ExportFormatCSV {
		return nil, ErrUnsupportedFormat
	}

	db := u.db.WithContext(ctx)
	patients, err := u.patientRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}
	progress, err := u.progressRepo.FindAllWithPhase(db)
	if err != nil {
		u.log.Warnf("Failed to find progress records: %+v", err)
		return nil, err
	}

	if err := os.MkdirAll(u.storage.ExportDir, 0o755); err != nil {
		u.log.Warnf("Failed to create export directory: %+v", err)
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	exportedAt := u.now()
	ts := exportedAt.Format(fileTimestampLayout)

	var files []string
	switch req.Format {
	case ExportFormatXLSX:
		path := filepath.Join(u.storage.ExportDir, fmt.Sprintf("dados_%s.xlsx", ts))
		if err := spreadsheet.WriteWorkbook(path, patients, progress); err != nil {
			u.log.Warnf("Failed to write workbook: %+v", err)
			return nil, err
		}
		files = []string{path}
	case ExportFormatCSV:
		patientsPath := filepath.Join(u.storage.ExportDir, fmt.Sprintf("pacientes_%s.csv", ts))
		progressPath := filepath.Join(u.storage.ExportDir, fmt.Sprintf("progresso_%s.csv", ts))
		if err := spreadsheet.WriteCSVPair(patientsPath, progressPath, patients, progress); err != nil {
			u.log.Warnf("Failed to write csv files: %+v", err)
			return nil, err
		}
		files = []string{patientsPath, progressPath}
	}

	details := map[string]interface{}{
		"format":   req.Format,
		"files":    files,
		"patients": len(patients),
		"progress": len(progress),
	}
	if err := u.auditService.LogEvent(ctx, db, middleware.ActorFromContext(ctx), entity.AuditActionDataExport, details); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
		return nil, err
	}

	return &dto.ExportResponse{
		Format:     req.Format,
		Files:      files,
		Patients:   len(patients),
		Progress:   len(progress),
		ExportedAt: exportedAt,
	}, nil
}

// backupPath names the attempt-th backup taken within the same second.
func backupPath(dir, ts string, attempt int) string {
	if attempt == 1 {
		return filepath.Join(dir, fmt.Sprintf("backup_%s.db", ts))
	}
	return filepath.Join(dir, fmt.Sprintf("backup_%s_%d.db", ts, attempt))
}

// Backup copies the database into a new SQLite file under the backup directory.
func (u *dataUsecase) Backup(ctx context.Context) (*dto.BackupResponse, error) {
	if err := os.MkdirAll(u.storage.BackupDir, 0o755); err != nil {
		u.log.Warnf("Failed to create backup directory: %+v", err)
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	createdAt := u.now()
	ts := createdAt.Format(fileTimestampLayout)

	var path string
	for attempt := 1; ; attempt++ {
		path = backupPath(u.storage.BackupDir, ts, attempt)
		err := database.BackupToSQLite(ctx, u.db, path, u.log)
		if err == nil {
			break
		}
		if !errors.Is(err, database.ErrBackupExists) || attempt == maxBackupAttempts {
			u.log.Warnf("Failed to back up database: %+v", err)
			return nil, err
		}
	}

	details := map[string]interface{}{"file": path}
	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), middleware.ActorFromContext(ctx), entity.AuditActionDataBackup, details); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
		return nil, err
	}

	return &dto.BackupResponse{
		File:      path,
		CreatedAt: createdAt,
	}, nil
}
