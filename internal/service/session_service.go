package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for registered access tokens
	RedisSessionKeyPrefix = "session:"

	// Number of keys fetched per SCAN round when revoking every session of a user
	sessionScanCount = 100
)

// SessionService keeps the registry of live access tokens. A token is only accepted
// while its key exists, so deleting the key logs the session out.
type SessionService interface {
	Register(ctx context.Context, username, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, username, tokenID string) (bool, error)
	Revoke(ctx context.Context, username, tokenID string) error
	RevokeAll(ctx context.Context, username string) (int, error)
}

type redisSessionService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisSessionService(redisClient *redis.Client, log *logrus.Logger) SessionService {
	return &redisSessionService{
		redisClient: redisClient,
		log:         log,
	}
}

func sessionKey(username, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", RedisSessionKeyPrefix, username, tokenID)
}

func (s *redisSessionService) Register(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, sessionKey(username, tokenID), time.Now().Unix(), ttl).Err(); err != nil {
		s.log.Warnf("Failed to register session for %s: %+v", username, err)
		return fmt.Errorf("register session for %s: %w", username, err)
	}
	return nil
}

func (s *redisSessionService) IsActive(ctx context.Context, username, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, sessionKey(username, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session for %s: %w", username, err)
	}
	return exists > 0, nil
}

func (s *redisSessionService) Revoke(ctx context.Context, username, tokenID string) error {
	if err := s.redisClient.Del(ctx, sessionKey(username, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to revoke session for %s: %+v", username, err)
		return fmt.Errorf("revoke session for %s: %w", username, err)
	}
	return nil
}

// RevokeAll deletes every registered token of a user.
func (s *redisSessionService) RevokeAll(ctx context.Context, username string) (int, error) {
	pattern := fmt.Sprintf("%s%s:*", RedisSessionKeyPrefix, username)
	var cursor uint64
	revoked := 0

	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, pattern, sessionScanCount).Result()
		if err != nil {
			return revoked, fmt.Errorf("scan sessions for %s: %w", username, err)
		}
		if len(keys) > 0 {
			n, err := s.redisClient.Del(ctx, keys...).Result()
			if err != nil {
				return revoked, fmt.Errorf("delete sessions for %s: %w", username, err)
			}
			revoked += int(n)
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	s.log.Debugf("Revoked %d sessions for %s", revoked, username)
	return revoked, nil
}
