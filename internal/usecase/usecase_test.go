package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"sagra/config"
	"sagra/internal/domain/entity"
	"sagra/internal/infrastructure/database"
	"sagra/internal/repository"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func setupTestDB(t *testing.T) (*gorm.DB, *logrus.Logger) {
	t.Helper()

	log := quietLog()
	db, err := database.Open(config.DBConfig{Driver: config.DriverSQLite, Path: database.MemoryPath}, log, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db, log
}

func fixedClock(s string) Clock {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newAuditService(log *logrus.Logger) service.AuditService {
	return service.NewAuditService(log, repository.NewAuditLogRepository())
}

func countAuditLogs(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&n).Error)
	return n
}

// memorySessions is an in-process SessionService.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]time.Duration
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]time.Duration)}
}

func (m *memorySessions) key(username, tokenID string) string {
	return username + ":" + tokenID
}

func (m *memorySessions) Register(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[m.key(username, tokenID)] = ttl
	return nil
}

func (m *memorySessions) IsActive(ctx context.Context, username, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[m.key(username, tokenID)]
	return ok, nil
}

func (m *memorySessions) Revoke(ctx context.Context, username, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, m.key(username, tokenID))
	return nil
}

func (m *memorySessions) RevokeAll(ctx context.Context, username string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.sessions {
		if strings.HasPrefix(k, username+":") {
			delete(m.sessions, k)
			n++
		}
	}
	return n, nil
}
