package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"sagra/internal/converter"
	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"
	"sagra/internal/infrastructure/spreadsheet"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProtocolNotFound = errors.New("protocol not found")
)

type ProtocolUsecase interface {
	GetAllProtocols(ctx context.Context) (*dto.ProtocolListResponse, error)
	GetSeries(ctx context.Context, name string, startDate string, patientID int) (*dto.SeriesResponse, error)
	GetProtocolFile(ctx context.Context, name string) (string, error)
}

type protocolUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	loader      *spreadsheet.ProtocolLoader
	patientRepo repository.PatientRepository
	now         Clock
}

func NewProtocolUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loader *spreadsheet.ProtocolLoader,
	patientRepo repository.PatientRepository,
	now Clock,
) ProtocolUsecase {
	if now == nil {
		now = defaultClock
	}
	return &protocolUsecase{
		db:          db,
		log:         log,
		loader:      loader,
		patientRepo: patientRepo,
		now:         now,
	}
}

// GetAllProtocols reads the protocols directory on every call and lists the usable
// spreadsheets by name, with the reasons the others were skipped.
func (u *protocolUsecase) GetAllProtocols(ctx context.Context) (*dto.ProtocolListResponse, error) {
	protocols, issues, err := u.loader.Load()
	if err != nil {
		u.log.Warnf("Failed to load protocols: %+v", err)
		return nil, err
	}

	names := make([]string, 0, len(protocols))
	for name := range protocols {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := &dto.ProtocolListResponse{
		Protocols: make([]dto.ProtocolResponse, 0, len(names)),
		Issues:    issues,
	}
	for _, name := range names {
		p := protocols[name]
		resp.Protocols = append(resp.Protocols, dto.ProtocolResponse{
			Name:    p.Name,
			Columns: p.Columns,
			Rows:    len(p.Rows),
		})
	}
	return resp, nil
}

// GetSeries anchors a protocol curve at startDate, at the surgery date of the given
// patient, or at today when neither is set.
func (u *protocolUsecase) GetSeries(ctx context.Context, name string, startDate string, patientID int) (*dto.SeriesResponse, error) {
	reference, err := u.referenceDate(ctx, startDate, patientID)
	if err != nil {
		return nil, err
	}

	protocols, _, err := u.loader.Load()
	if err != nil {
		u.log.Warnf("Failed to load protocols: %+v", err)
		return nil, err
	}
	protocol, ok := protocols[name]
	if !ok {
		return nil, ErrProtocolNotFound
	}

	points, err := service.BuildSeries(protocol.Rows, reference)
	if err != nil {
		return nil, err
	}

	return converter.SeriesToResponse(protocol, reference.Format(entity.DateLayout), points, service.SummarizeSeries(points)), nil
}

func (u *protocolUsecase) GetProtocolFile(ctx context.Context, name string) (string, error) {
	path, err := u.loader.Path(name)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrProtocolNotFound) {
			return "", ErrProtocolNotFound
		}
		u.log.Warnf("Failed to resolve protocol file: %+v", err)
		return "", err
	}
	return path, nil
}

func (u *protocolUsecase) referenceDate(ctx context.Context, startDate string, patientID int) (time.Time, error) {
	if startDate != "" {
		return parseDate(startDate)
	}
	if patientID == 0 {
		return entity.NormalizeDate(u.now()), nil
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return time.Time{}, err
	}
	if patient == nil {
		return time.Time{}, ErrPatientNotFound
	}
	return entity.NormalizeDate(patient.SurgeryDate), nil
}
