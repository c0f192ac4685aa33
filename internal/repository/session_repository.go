package repository

import (
	"context"
	"encoding/json"
	"time"

	"tubequiz/internal/cache"
	"tubequiz/internal/domain"
	"tubequiz/internal/logger"

	"go.uber.org/zap"
)

// redisSessionRepository implements domain.SessionRepository on top of the
// cache port. Sessions are JSON-encoded and TTL-bound, so an abandoned quiz
// expires instead of accumulating.
type redisSessionRepository struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionRepository creates a Redis-backed session repository.
func NewSessionRepository(cache domain.Cache, ttl time.Duration) domain.SessionRepository {
	return &redisSessionRepository{cache: cache, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return cache.GenerateCacheKey("session", "quiz", sessionID)
}

// GetSession loads a session by ID. An expired or unknown ID yields
// SESSION_NOT_FOUND.
func (r *redisSessionRepository) GetSession(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	data, err := r.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("failed to load quiz session", err)
	}

	var session domain.QuizSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		// A corrupt entry is unrecoverable; treat it as absent.
		logger.Get().Error("Failed to decode stored quiz session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return &session, nil
}

// SaveSession stores the session and refreshes its TTL.
func (r *redisSessionRepository) SaveSession(ctx context.Context, session *domain.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz session", err)
	}
	if err := r.cache.Set(ctx, sessionKey(session.ID), string(data), r.ttl); err != nil {
		return domain.NewInternalError("failed to store quiz session", err)
	}
	return nil
}

// DeleteSession removes the session. Missing sessions are not an error.
func (r *redisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		return domain.NewInternalError("failed to delete quiz session", err)
	}
	return nil
}
