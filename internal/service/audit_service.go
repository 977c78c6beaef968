package service

import (
	"context"

	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, username string, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, username string, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogEvent(ctx context.Context, tx *gorm.DB, username string, action string, details map[string]interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, username string, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, username, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, username string, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, username, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogEvent logs an action that is not tied to a single row, such as an export
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, username string, action string, details map[string]interface{}) error {
	return s.write(ctx, tx, username, action, entity.JSON(details))
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, username, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Username: username,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
