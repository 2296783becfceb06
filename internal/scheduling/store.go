package scheduling

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/healthsync-ai/scheduler/pkg/logging"
)

const storeKey = "healthsync:appointments"

// Store persists appointments as a JSON-encoded list under a single key.
type Store struct {
	redis  *redis.Client
	logger *logging.Logger
}

// NewStore creates an appointment store backed by redis.
func NewStore(redisClient *redis.Client, logger *logging.Logger) *Store {
	if redisClient == nil {
		panic("scheduling: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: redisClient, logger: logger}
}

// LoadAll returns every stored appointment. Missing or corrupt payloads
// recover as an empty list.
func (s *Store) LoadAll(ctx context.Context) ([]Appointment, error) {
	data, err := s.redis.Get(ctx, storeKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scheduling: load appointments: %w", err)
	}

	var appointments []Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		s.logger.Warn("appointment table corrupt, treating as empty", "error", err)
		return nil, nil
	}
	return appointments, nil
}

// SaveAll replaces the stored list.
func (s *Store) SaveAll(ctx context.Context, appointments []Appointment) error {
	data, err := json.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("scheduling: marshal appointments: %w", err)
	}
	if err := s.redis.Set(ctx, storeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("scheduling: save appointments: %w", err)
	}
	return nil
}
