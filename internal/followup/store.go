package followup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/pkg/logging"
)

const storeKey = "healthsync:followups"

// Store persists check-ins as a JSON-encoded list under a single key, in
// insertion order.
type Store struct {
	redis  *redis.Client
	logger *logging.Logger
}

// NewStore creates a follow-up store backed by redis.
func NewStore(redisClient *redis.Client, logger *logging.Logger) *Store {
	if redisClient == nil {
		panic("followup: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: redisClient, logger: logger}
}

// LoadAll returns every stored check-in. A missing key or a corrupt payload
// yields an empty list rather than an error.
func (s *Store) LoadAll(ctx context.Context) ([]FollowUp, error) {
	data, err := s.redis.Get(ctx, storeKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("followup: load check-ins: %w", err)
	}

	var followUps []FollowUp
	if err := json.Unmarshal(data, &followUps); err != nil {
		s.logger.Warn("follow-up list corrupt, treating as empty", "error", err)
		return nil, nil
	}
	return followUps, nil
}

// SaveAll replaces the stored list.
func (s *Store) SaveAll(ctx context.Context, followUps []FollowUp) error {
	data, err := json.Marshal(followUps)
	if err != nil {
		return fmt.Errorf("followup: marshal check-ins: %w", err)
	}
	if err := s.redis.Set(ctx, storeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("followup: save check-ins: %w", err)
	}
	return nil
}
