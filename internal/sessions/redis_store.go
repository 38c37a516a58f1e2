package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Maazpendari01/InterviewQi/internal/interview"
)

const keyPrefix = "interview:session:"

// RedisStore keeps JSON snapshots of sessions in Redis so several server
// instances can serve the same interview
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (rs *RedisStore) Save(ctx context.Context, state *interview.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.SessionID, err)
	}
	return rs.rdb.Set(ctx, sessionKey(state.SessionID), data, rs.ttl).Err()
}

func (rs *RedisStore) Load(ctx context.Context, sessionID string) (*interview.State, error) {
	data, err := rs.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interview.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var state interview.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

func (rs *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return rs.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.rdb.Ping(ctx).Err()
}
