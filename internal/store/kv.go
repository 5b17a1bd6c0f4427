package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Keys of the durable namespace. The session, document and theme stores
// each own disjoint keys and never interleave writes to the same one.
const (
	KeyCurrentIdentity = "ibplan:session:current"
	KeyFolders         = "ibplan:papers:folders"
	KeyPapers          = "ibplan:papers:uploads"
	KeyTheme           = "ibplan:ui:theme"
)

// KV is a thin JSON codec over the shared key-value namespace. Values
// are persisted without expiry; a page reload (process restart)
// rehydrates from the same keys.
type KV struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewKV wraps a connected Redis client.
func NewKV(client *redis.Client, logger zerolog.Logger) *KV {
	return &KV{
		client: client,
		logger: logger.With().Str("component", "kv_store").Logger(),
	}
}

// GetJSON loads and decodes the value at key into dest. A missing key
// returns found=false. A value that fails to decode is treated exactly
// like a missing one: rehydration must yield a clean empty state, never
// a hard failure.
func (s *KV) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn().Str("key", key).Err(err).Msg("discarding malformed stored value")
		return false, nil
	}
	return true, nil
}

// SetJSON encodes value and overwrites key synchronously.
func (s *KV) SetJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, payload, 0).Err()
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KV) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
