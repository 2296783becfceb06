package capacity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/pkg/logging"
)

const storeKey = "healthsync:capacity"

// Store persists the capacity table as a JSON-encoded list under a single
// key. The table is small (one record per specialty per active day) so
// whole-table load/save keeps the persistence contract to plain get/set.
type Store struct {
	redis  *redis.Client
	logger *logging.Logger
}

// NewStore creates a capacity store backed by redis.
func NewStore(redisClient *redis.Client, logger *logging.Logger) *Store {
	if redisClient == nil {
		panic("capacity: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: redisClient, logger: logger}
}

// LoadAll returns every stored record. A missing key or a corrupt payload
// yields an empty table rather than an error; the scheduler must keep
// working even if stored state was damaged.
func (s *Store) LoadAll(ctx context.Context) ([]Record, error) {
	data, err := s.redis.Get(ctx, storeKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("capacity: load records: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("capacity table corrupt, treating as empty", "error", err)
		return nil, nil
	}
	return records, nil
}

// SaveAll replaces the stored table.
func (s *Store) SaveAll(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("capacity: marshal records: %w", err)
	}
	if err := s.redis.Set(ctx, storeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("capacity: save records: %w", err)
	}
	return nil
}
