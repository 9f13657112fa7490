package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

const (
	// DefaultSessionTTL is how long an untouched session survives in Redis (30 days)
	DefaultSessionTTL = 30 * 24 * time.Hour
)

// Store persists sessions, their saved marks and their generated documents.
// Every key of a session shares the same TTL, refreshed by TrackSession.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store. ttl <= 0 uses DefaultSessionTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// TrackSession stores a session header and extends the TTL of its data
func (s *Store) TrackSession(ctx context.Context, info domain.SessionInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SessionKey(info.ID), data, s.ttl)
	pipe.SAdd(ctx, AllSessionsKey(), info.ID)
	pipe.Expire(ctx, SavedKey(info.ID), s.ttl)
	pipe.Expire(ctx, DocumentsKey(info.ID), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to track session: %w", err)
	}
	return nil
}

// GetSession retrieves a session header. A missing or expired session
// returns false without error.
func (s *Store) GetSession(ctx context.Context, id string) (domain.SessionInfo, bool, error) {
	var info domain.SessionInfo
	found, err := s.getJSON(ctx, SessionKey(id), &info)
	if err != nil {
		return domain.SessionInfo{}, false, fmt.Errorf("failed to get session: %w", err)
	}
	return info, found, nil
}

// ListSessions retrieves every live session. IDs whose header expired are
// dropped from the index set as they are found.
func (s *Store) ListSessions(ctx context.Context) ([]domain.SessionInfo, error) {
	ids, err := s.client.SMembers(ctx, AllSessionsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	if len(ids) == 0 {
		return []domain.SessionInfo{}, nil
	}

	sessions := make([]domain.SessionInfo, 0, len(ids))
	var stale []any
	for _, id := range ids {
		info, found, err := s.GetSession(ctx, id)
		if err != nil {
			// Skip sessions that couldn't be retrieved
			continue
		}
		if !found {
			stale = append(stale, id)
			continue
		}
		sessions = append(sessions, info)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, AllSessionsKey(), stale...).Err(); err != nil {
			return sessions, fmt.Errorf("failed to prune expired sessions: %w", err)
		}
	}

	return sessions, nil
}

// ForgetSession removes a session and everything stored for it, reporting
// whether the session record existed.
func (s *Store) ForgetSession(ctx context.Context, id string) (bool, error) {
	pipe := s.client.TxPipeline()
	known := pipe.Del(ctx, SessionKey(id))
	pipe.Del(ctx, SavedKey(id), DocumentsKey(id))
	pipe.SRem(ctx, AllSessionsKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to forget session: %w", err)
	}
	return known.Val() > 0, nil
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *Store) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}
