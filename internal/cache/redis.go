package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

const redisOpTimeout = 2 * time.Second

// Redis is a Redis-backed Cache. Every failure is logged and treated as a
// miss so the cache never gets in the way of a lookup.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis connects to Redis using a redis:// URL and verifies the
// connection with a bounded ping. A non-positive ttl falls back to
// DefaultTTL.
func NewRedis(url string, ttl time.Duration, logger zerolog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info().Str("addr", opt.Addr).Msg("connected to redis playlist cache")
	return &Redis{client: client, ttl: ttl, logger: logger}, nil
}

// Get returns the cached tracks for key, if present.
func (c *Redis) Get(ctx context.Context, key string) ([]mood.Track, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis get failed")
		return nil, false
	}

	var tracks []mood.Track
	if err := json.Unmarshal(val, &tracks); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cached playlist is not valid json")
		return nil, false
	}
	return tracks, true
}

// Set stores tracks under key with the configured TTL.
func (c *Redis) Set(ctx context.Context, key string, tracks []mood.Track) {
	payload, err := json.Marshal(tracks)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("marshaling playlist for cache failed")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Close releases the underlying Redis connection.
func (c *Redis) Close() error {
	return c.client.Close()
}

var _ Cache = (*Redis)(nil)
