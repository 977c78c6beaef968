package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"sagra/internal/converter"
	"sagra/internal/delivery/dto"
	"sagra/internal/delivery/http/middleware"
	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrSurgeryDateInFuture = errors.New("surgery date cannot be in the future")
)

// Clock returns the current wall time. Tests replace it to pin "today".
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now()
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return entity.NormalizeDate(t), nil
}

type PatientUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	now          Clock
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	now Clock,
) PatientUsecase {
	if now == nil {
		now = defaultClock
	}
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
		now:          now,
	}
}

// RegisterPatient creates the patient or, when the name is already registered,
// replaces its surgery date. The patient name is the natural key.
func (u *patientUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	surgeryDate, err := parseDate(req.SurgeryDate)
	if err != nil {
		return nil, err
	}
	today := entity.NormalizeDate(u.now())
	if surgeryDate.After(today) {
		return nil, ErrSurgeryDateInFuture
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	name := strings.TrimSpace(req.Name)
	existing, err := u.patientRepo.FindByName(tx, name)
	if err != nil {
		u.log.Warnf("Failed to find patient by name: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:             name,
		SurgeryDate:      surgeryDate,
		RegistrationDate: today,
	}
	if err := u.patientRepo.Upsert(tx, patient); err != nil {
		u.log.Warnf("Failed to upsert patient: %+v", err)
		return nil, err
	}

	actor := middleware.ActorFromContext(ctx)
	patientID := strconv.Itoa(patient.ID)
	if existing == nil {
		err = u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionPatientRegister, "patient", patientID, converter.PatientToResponse(patient))
	} else {
		err = u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionPatientRegister, "patient", patientID, converter.PatientToResponse(existing), converter.PatientToResponse(patient))
	}
	if err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}
