package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sagra/config"
	"sagra/internal/domain/entity"
	"sagra/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	active bool
	err    error
}

func (s *stubSessions) Register(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	return nil
}

func (s *stubSessions) IsActive(ctx context.Context, username, tokenID string) (bool, error) {
	return s.active, s.err
}

func (s *stubSessions) Revoke(ctx context.Context, username, tokenID string) error {
	return nil
}

func (s *stubSessions) RevokeAll(ctx context.Context, username string) (int, error) {
	return 0, nil
}

func echoSession(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSessionFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", session.Username)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "middleware-secret", AccessExpiry: time.Hour})
	token, _, err := jwtService.GenerateAccessToken("user", entity.RoleStaff)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		sessions *stubSessions
		want     int
	}{
		{name: "missing header", header: "", sessions: &stubSessions{active: true}, want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, sessions: &stubSessions{active: true}, want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", sessions: &stubSessions{active: true}, want: http.StatusUnauthorized},
		{name: "revoked", header: "Bearer " + token, sessions: &stubSessions{active: false}, want: http.StatusUnauthorized},
		{name: "session store down", header: "Bearer " + token, sessions: &stubSessions{err: assert.AnError}, want: http.StatusInternalServerError},
		{name: "active", header: "Bearer " + token, sessions: &stubSessions{active: true}, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthMiddleware(jwtService, tt.sessions).Authenticate(echoSession(t))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, "user", rec.Header().Get("X-User"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireAdmin(ok)

	// Given no session
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Given a staff session
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), entity.Session{Username: "user", Role: entity.RoleStaff}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Given an admin session
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), entity.Session{Username: "admin", Role: entity.RoleAdmin}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, "system", ActorFromContext(context.Background()))

	ctx := WithSession(context.Background(), entity.Session{Username: "admin"})
	assert.Equal(t, "admin", ActorFromContext(ctx))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	NewCORSMiddleware("").Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	NewCORSMiddleware("http://localhost:8501").Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "http://localhost:8501", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) })
	RequestLogger(log)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/patients", nil))

	assert.Contains(t, buf.String(), `"status":201`)
	assert.Contains(t, buf.String(), `"path":"/api/v1/patients"`)
}
