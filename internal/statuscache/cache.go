// Package statuscache is the fast-read projection of analysis progress: a
// Redis-backed, time-boxed StatusRecord per analysis, written by the pipeline
// and polled by clients.
//
// The cache is advisory between terminal states. Only the durable store
// (internal/store) is authoritative; a missing or expired record means
// "unknown, fall back to the durable store", never "failed".
package statuscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stylelens/stylelens/internal/logger"
)

// ErrMiss is returned when no record exists for the key (absent or expired).
var ErrMiss = errors.New("statuscache: miss")

// StatusRecord is the cached progress view of one analysis.
type StatusRecord struct {
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cache wraps the go-redis client with the status-record operations.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    logger.Logger
}

// NewCache constructs the Redis-backed cache. Connectivity is verified by the
// fx start hook, not here, so construction never blocks.
func NewCache(cfg Config, log logger.Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}

	return &Cache{client: client, ttl: ttl, log: log}
}

// NewCacheWithClient wraps an existing client. Used by tests.
func NewCacheWithClient(client redis.UniversalClient, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Ping verifies connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

func stateKey(analysisID string) string {
	return "analysis:" + analysisID + ":state"
}

// SetState writes the status record for an analysis with the configured TTL.
// The timestamp is stamped here so successive writes are totally ordered from
// the reader's perspective.
func (c *Cache) SetState(ctx context.Context, analysisID string, status string, progress int) error {
	rec := StatusRecord{
		Status:    status,
		Progress:  progress,
		UpdatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("statuscache: marshal record: %w", err)
	}
	if err := c.client.Set(ctx, stateKey(analysisID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("statuscache: set %s: %w", analysisID, err)
	}
	return nil
}

// GetState reads the status record for an analysis. Returns ErrMiss when the
// record is absent or expired.
func (c *Cache) GetState(ctx context.Context, analysisID string) (*StatusRecord, error) {
	raw, err := c.client.Get(ctx, stateKey(analysisID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("statuscache: get %s: %w", analysisID, err)
	}

	var rec StatusRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// A corrupt record is as good as a miss; the durable store
		// fallback will serve the poll.
		c.log.Warn("discarding corrupt status record", err, map[string]interface{}{
			"analysis_id": analysisID,
		})
		return nil, ErrMiss
	}
	return &rec, nil
}
