package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores gateway session records. Sessions live in Redis
// when a client is available and fall back to an in-process map otherwise,
// so a development setup without Redis still authenticates.
type SessionRepository struct {
	client *redis.Client

	mu    sync.RWMutex
	local map[string]models.Session
}

// NewSessionRepository constructs a session repository. client may be nil.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
		local:  make(map[string]models.Session),
	}
}

// Save persists the session until its expiry.
func (r *SessionRepository) Save(ctx context.Context, session models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	if r.client == nil {
		r.mu.Lock()
		r.local[session.ID] = session
		r.mu.Unlock()
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Find loads a session by ID. Expired or unknown sessions yield ErrUnauthorized.
func (r *SessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	if r.client == nil {
		r.mu.RLock()
		session, ok := r.local[id]
		r.mu.RUnlock()
		if !ok || time.Now().After(session.ExpiresAt) {
			return nil, appErrors.ErrUnauthorized
		}
		return &session, nil
	}

	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// Delete tears down a session record.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		r.mu.Lock()
		delete(r.local, id)
		r.mu.Unlock()
		return nil
	}
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
