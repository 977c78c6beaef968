package middleware

import (
	"context"
	"net/http"
	"strings"

	"sagra/internal/domain/entity"
	"sagra/internal/service"
	"sagra/pkg/jwt"
	"sagra/pkg/response"
)

type contextKey string

const sessionKey contextKey = "session"

type AuthMiddleware struct {
	jwtService     *jwt.JWTService
	sessionService service.SessionService
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionService service.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		sessionService: sessionService,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Check if token is still registered (not logged out)
		active, err := m.sessionService.IsActive(r.Context(), claims.Username, claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !active {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := WithSession(r.Context(), entity.Session{
			Username: claims.Username,
			Role:     claims.Role,
			TokenID:  claims.TokenID,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession attaches the authenticated caller to ctx
func WithSession(ctx context.Context, session entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext extracts the authenticated caller from context
func GetSessionFromContext(ctx context.Context) (entity.Session, bool) {
	session, ok := ctx.Value(sessionKey).(entity.Session)
	return session, ok
}

// ActorFromContext names who performs an action, "system" outside of a request
func ActorFromContext(ctx context.Context) string {
	if session, ok := GetSessionFromContext(ctx); ok {
		return session.Username
	}
	return "system"
}
