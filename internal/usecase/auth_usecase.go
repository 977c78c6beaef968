package usecase

import (
	"context"
	"errors"
	"fmt"

	"sagra/config"
	"sagra/internal/delivery/dto"
	"sagra/internal/delivery/http/middleware"
	"sagra/internal/domain/entity"
	"sagra/internal/service"
	"sagra/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("no active session")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) (int, error)
	GetCurrentSession(ctx context.Context) (*dto.SessionResponse, error)
}

type account struct {
	username     string
	passwordHash []byte
	role         string
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	accounts       map[string]account
	jwtService     *jwt.JWTService
	sessionService service.SessionService
	auditService   service.AuditService
}

// NewAuthUsecase hashes the configured passwords once; plain-text passwords are
// not kept in memory afterwards.
func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	users []config.UserCredential,
	hashCost int,
	jwtService *jwt.JWTService,
	sessionService service.SessionService,
	auditService service.AuditService,
) (AuthUsecase, error) {
	accounts := make(map[string]account, len(users))
	for _, user := range users {
		if !entity.IsKnownRole(user.Role) {
			return nil, fmt.Errorf("user %q has unknown role %q", user.Username, user.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password of %q: %w", user.Username, err)
		}
		accounts[user.Username] = account{
			username:     user.Username,
			passwordHash: hash,
			role:         user.Role,
		}
	}

	return &authUsecase{
		db:             db,
		log:            log,
		accounts:       accounts,
		jwtService:     jwtService,
		sessionService: sessionService,
		auditService:   auditService,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	acc, ok := u.accounts[req.Username]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(acc.username, acc.role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.sessionService.Register(ctx, acc.username, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to register session: %+v", err)
		return nil, err
	}

	details := map[string]interface{}{"token_id": tokenID, "role": acc.role}
	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), acc.username, entity.AuditActionUserLogin, details); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context) error {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		return ErrSessionNotFound
	}

	if err := u.sessionService.Revoke(ctx, session.Username, session.TokenID); err != nil {
		u.log.Warnf("Failed to revoke session: %+v", err)
		return err
	}

	details := map[string]interface{}{"token_id": session.TokenID}
	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), session.Username, entity.AuditActionUserLogout, details); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
	}
	return nil
}

// LogoutAll revokes every token issued to the caller, the current one included.
func (u *authUsecase) LogoutAll(ctx context.Context) (int, error) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		return 0, ErrSessionNotFound
	}

	revoked, err := u.sessionService.RevokeAll(ctx, session.Username)
	if err != nil {
		u.log.Warnf("Failed to revoke sessions: %+v", err)
		return 0, err
	}

	details := map[string]interface{}{"revoked": revoked}
	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), session.Username, entity.AuditActionUserLogout, details); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
	}
	return revoked, nil
}

func (u *authUsecase) GetCurrentSession(ctx context.Context) (*dto.SessionResponse, error) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return &dto.SessionResponse{
		Username: session.Username,
		Role:     session.Role,
	}, nil
}
