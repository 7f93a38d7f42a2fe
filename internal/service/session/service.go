package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"connectfour/internal/config"
	"connectfour/internal/domain"
	"connectfour/pkg/auth"
	"connectfour/pkg/uid"
)

const sessionKeyPrefix = "session:"
const sessionCacheTTL = 10 * time.Minute

type SessionRepository interface {
	CreateSession(userID int64, sessionID, deviceInfo, ipAddress string, expiresAt time.Time) error
	GetSessionByID(sessionID string) (*domain.UserSession, error)
	DeactivateSession(sessionID string) error
	DeactivateUserSessions(userID int64) error
	TouchSession(sessionID string) error
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// AuthService issues and validates login sessions. JWTs are stateless
// but every validation also checks the backing session row, so logout
// and bans take effect immediately. Redis holds a short-lived copy of
// the row to keep the hot path off PostgreSQL.
type AuthService struct {
	repo  SessionRepository
	cache CacheRepository // optional, may be nil
}

func NewAuthService(repo SessionRepository, cache CacheRepository) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

// Login creates a session row and returns a signed token for it. Any
// previous sessions for the user stay valid; callers wanting
// single-session semantics deactivate them first.
func (s *AuthService) Login(userID int64, username, deviceInfo, ipAddress string) (string, error) {
	sessionID, err := uid.NewSessionID()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(time.Duration(config.AppConfig.JWTExpirationHours) * time.Hour)
	if err := s.repo.CreateSession(userID, sessionID, deviceInfo, ipAddress, expiresAt); err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(userID, username, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %v", err)
	}
	return token, nil
}

// ValidateToken checks the JWT signature and the session row behind it.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := s.getSession(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("session not found")
	}
	if !session.IsActive {
		return nil, errors.New("session logged out")
	}
	if session.Expired(time.Now()) {
		return nil, errors.New("session expired")
	}

	// best effort, not worth blocking the request
	go s.repo.TouchSession(claims.SessionID)

	return claims, nil
}

// Logout deactivates the session and drops its cache entry.
func (s *AuthService) Logout(sessionID string) error {
	if s.cache != nil {
		if err := s.cache.Del(context.Background(), sessionKeyPrefix+sessionID); err != nil {
			log.Warn().Err(err).Msg("failed to evict session from cache")
		}
	}
	return s.repo.DeactivateSession(sessionID)
}

// LogoutAll deactivates every session of a user. Cache entries are left
// to expire; the DB check on the next request rejects them anyway.
func (s *AuthService) LogoutAll(userID int64) error {
	return s.repo.DeactivateUserSessions(userID)
}

func (s *AuthService) getSession(sessionID string) (*domain.UserSession, error) {
	ctx := context.Background()

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID); err == nil && data != "" {
			var session domain.UserSession
			if err := json.Unmarshal([]byte(data), &session); err == nil {
				return &session, nil
			}
		}
	}

	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil || session == nil {
		return session, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(session); err == nil {
			if err := s.cache.Set(ctx, sessionKeyPrefix+sessionID, data, sessionCacheTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache session")
			}
		}
	}
	return session, nil
}
