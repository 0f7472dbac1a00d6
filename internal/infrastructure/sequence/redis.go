// Package sequence implements the authoritative document-number counter on
// Redis. INCR is atomic, so concurrent callers in the same period never see
// the same value.
package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
	"github.com/nkwe-logistics/fleetflow-api/pkg/config"
)

var _ numbering.Sequencer = (*RedisSequencer)(nil)

// RedisSequencer counts per company, document type and YYMM period under
// seq:{companyID}:{type}:{period}.
type RedisSequencer struct {
	client *redis.Client
}

// NewRedisSequencer builds the sequencer and verifies connectivity.
func NewRedisSequencer(ctx context.Context, cfg config.RedisConfig) (*RedisSequencer, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisSequencer{client: client}, nil
}

// Next increments and returns the counter for the bucket.
func (s *RedisSequencer) Next(ctx context.Context, companyID string, docType numbering.DocType, period string) (int64, error) {
	key := fmt.Sprintf("seq:%s:%s:%s", companyID, docType, period)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return n, nil
}

// Close releases the underlying client.
func (s *RedisSequencer) Close() error {
	return s.client.Close()
}
