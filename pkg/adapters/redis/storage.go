// Package redis implements ports.VariableStorage on Redis, letting script
// variables survive process restarts and be shared between hosts.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// VariableStorage stores script variables as JSON values under a key prefix.
// The ports.VariableStorage interface is synchronous and infallible by
// contract, so backend errors are logged and treated as "not found" on reads
// and dropped writes; hosts that need stronger guarantees should check
// connectivity up front with Ping.
type VariableStorage struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the storage.
type Option func(*VariableStorage)

// WithTTL sets an expiration on stored variables.
func WithTTL(ttl time.Duration) Option {
	return func(s *VariableStorage) { s.ttl = ttl }
}

// WithPrefix overrides the key prefix (default "skein:var:").
func WithPrefix(prefix string) Option {
	return func(s *VariableStorage) { s.prefix = prefix }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *VariableStorage) { s.logger = logger }
}

// New creates storage connected to the given address.
func New(address, password string, db int, opts ...Option) *VariableStorage {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates storage from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *VariableStorage {
	s := &VariableStorage{
		client: client,
		prefix: "skein:var:",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping verifies connectivity.
func (s *VariableStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// GetValue implements ports.VariableStorage.
func (s *VariableStorage) GetValue(name string) (any, bool) {
	raw, err := s.client.Get(context.Background(), s.prefix+name).Result()
	if err == backend.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Error("redis variable read failed", "name", name, "error", err)
		return nil, false
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Error("redis variable decode failed", "name", name, "error", err)
		return nil, false
	}
	// JSON numbers decode as float64; scripts compute in float32.
	if f, ok := value.(float64); ok {
		return float32(f), true
	}
	return value, true
}

// SetValue implements ports.VariableStorage.
func (s *VariableStorage) SetValue(name string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("redis variable encode failed", "name", name, "error", err)
		return
	}
	if err := s.client.Set(context.Background(), s.prefix+name, raw, s.ttl).Err(); err != nil {
		s.logger.Error("redis variable write failed", "name", name, "error", err)
	}
}

// Clear implements ports.VariableStorage: it removes every key under the
// prefix.
func (s *VariableStorage) Clear() {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("redis variable scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("redis variable clear failed", "error", err)
	}
}
