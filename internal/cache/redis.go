// Package cache provides a Redis-backed prediction cache for the manager.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tourismd/internal/manager"
)

// DefaultKeyPrefix namespaces cache entries.
const DefaultKeyPrefix = "tourismd:pred:"

// Redis implements manager.Cache on a Redis server.
type Redis struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ manager.Cache = (*Redis)(nil)

// Opts configures NewRedis.
type Opts struct {
	// URL is a redis:// or rediss:// connection URL.
	URL       string
	KeyPrefix string
	// TTL of an entry; zero keeps entries until evicted.
	TTL time.Duration
	// OpTimeout bounds each cache round-trip.
	OpTimeout time.Duration
}

// NewRedis parses opts.URL and returns a cache. It does not contact the
// server; use Ping to verify connectivity.
func NewRedis(opts Opts) (*Redis, error) {
	ro, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opts.OpTimeout > 0 {
		ro.DialTimeout = opts.OpTimeout
		ro.ReadTimeout = opts.OpTimeout
		ro.WriteTimeout = opts.OpTimeout
	}
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Redis{client: redis.NewClient(ro), keyPrefix: prefix, ttl: opts.TTL}, nil
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

func (r *Redis) key(k string) string { return r.keyPrefix + k }

// Get returns the cached classification for key, if any.
func (r *Redis) Get(ctx context.Context, key string) (manager.Classification, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return manager.Classification{}, false, nil
	}
	if err != nil {
		return manager.Classification{}, false, err
	}
	c, err := decode(raw)
	if err != nil {
		return manager.Classification{}, false, err
	}
	return c, true, nil
}

// Set stores c under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, c manager.Classification) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}
	return r.client.Set(ctx, r.key(key), raw, r.ttl).Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error { return r.client.Close() }

func decode(raw []byte) (manager.Classification, error) {
	var c manager.Classification
	if err := json.Unmarshal(raw, &c); err != nil {
		return manager.Classification{}, fmt.Errorf("failed to unmarshal cached classification: %w", err)
	}
	if len(c.Labels) == 0 || len(c.Labels) != len(c.Scores) {
		return manager.Classification{}, errors.New("cached classification is malformed")
	}
	return c, nil
}
