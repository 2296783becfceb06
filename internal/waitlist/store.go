package waitlist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/pkg/logging"
)

const storeKey = "healthsync:waitlist"

// Store persists waitlist entries as a JSON-encoded list under a single key.
type Store struct {
	redis  *redis.Client
	logger *logging.Logger
}

// NewStore creates a waitlist store backed by redis.
func NewStore(redisClient *redis.Client, logger *logging.Logger) *Store {
	if redisClient == nil {
		panic("waitlist: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: redisClient, logger: logger}
}

// LoadAll returns every stored entry in insertion order. Missing or corrupt
// payloads recover as an empty list.
func (s *Store) LoadAll(ctx context.Context) ([]Entry, error) {
	data, err := s.redis.Get(ctx, storeKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("waitlist: load entries: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("waitlist table corrupt, treating as empty", "error", err)
		return nil, nil
	}
	return entries, nil
}

// SaveAll replaces the stored list.
func (s *Store) SaveAll(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("waitlist: marshal entries: %w", err)
	}
	if err := s.redis.Set(ctx, storeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("waitlist: save entries: %w", err)
	}
	return nil
}
