// Package cache implements the Redis-backed key/value store shared by the
// resolver, knowledge base, and chat responder. Ordinary operations never
// return an error to callers: a failed or unreachable store yields a safe
// default (empty/false/zero) and a warning log. Only Connect can fail.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bimmerhuolto/backend/engine/domain"
	"github.com/bimmerhuolto/backend/pkg/fn"
)

// errMiss marks an absent key. It is the one failure that is not logged at
// the boundary, since a miss is an ordinary outcome.
var errMiss = errors.New("cache miss")

// Store wraps a Redis client. All operations degrade to safe defaults when
// the store is unreachable.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// Connect parses a Redis URL, dials, and verifies the connection with a
// ping. This is the only place a cache failure is fatal.
func Connect(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client, logger: logger}, nil
}

// Close closes the underlying client.
func (s *Store) Close() error { return s.client.Close() }

// unwrap is the single safe-default boundary: failed results are logged
// (misses excepted) and replaced with def.
func unwrap[T any](logger *slog.Logger, op, key string, r fn.Result[T], def T) T {
	v, err := r.Unwrap()
	if err == nil {
		return v
	}
	if !errors.Is(err, errMiss) {
		logger.Warn("cache operation failed", "op", op, "key", key, "err", err)
	}
	return def
}

// --- internal Result-style operations ---

func (s *Store) get(ctx context.Context, key string) fn.Result[string] {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return fn.Err[string](errMiss)
	}
	return fn.FromPair(v, err)
}

func (s *Store) set(ctx context.Context, key, val string, ttl time.Duration) fn.Result[bool] {
	if err := s.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fn.Err[bool](err)
	}
	return fn.Ok(true)
}

// --- public surface ---

// Get returns the value for key, or ("", false) on miss or failure.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	r := s.get(ctx, key)
	return unwrap(s.logger, "get", key, r, ""), r.IsOk()
}

// Set stores val without expiry.
func (s *Store) Set(ctx context.Context, key, val string) bool {
	return unwrap(s.logger, "set", key, s.set(ctx, key, val, 0), false)
}

// SetWithTTL stores val with a per-key expiry.
func (s *Store) SetWithTTL(ctx context.Context, key, val string, ttl time.Duration) bool {
	return unwrap(s.logger, "setex", key, s.set(ctx, key, val, ttl), false)
}

// GetJSON reads key and unmarshals it into dest. False on miss, failure,
// or malformed payload.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, okRead := s.Get(ctx, key)
	if !okRead {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("cache payload malformed", "op", "getjson", "key", key, "err", err)
		return false
	}
	return true
}

// SetJSON marshals v and stores it with a per-key expiry.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache payload not serializable", "op", "setjson", "key", key, "err", err)
		return false
	}
	return s.SetWithTTL(ctx, key, string(data), ttl)
}

// Delete removes keys. Best effort.
func (s *Store) Delete(ctx context.Context, keys ...string) bool {
	r := fn.FromPair(s.client.Del(ctx, keys...).Result())
	return unwrap(s.logger, "del", fmt.Sprint(keys), r, int64(0)) > 0
}

// Exists reports whether key is present. False on failure.
func (s *Store) Exists(ctx context.Context, key string) bool {
	r := fn.FromPair(s.client.Exists(ctx, key).Result())
	return unwrap(s.logger, "exists", key, r, int64(0)) > 0
}

// Increment atomically increments a counter key, returning the new value,
// or 0 on failure.
func (s *Store) Increment(ctx context.Context, key string) int64 {
	r := fn.FromPair(s.client.Incr(ctx, key).Result())
	return unwrap(s.logger, "incr", key, r, int64(0))
}

// Keys returns keys matching pattern, or nil on failure.
func (s *Store) Keys(ctx context.Context, pattern string) []string {
	r := fn.FromPair(s.client.Keys(ctx, pattern).Result())
	return unwrap(s.logger, "keys", pattern, r, []string(nil))
}

// ListPush prepends val to a list and trims it to maxLen entries.
func (s *Store) ListPush(ctx context.Context, key, val string, maxLen int64) bool {
	if err := s.client.LPush(ctx, key, val).Err(); err != nil {
		return unwrap(s.logger, "lpush", key, fn.Err[bool](err), false)
	}
	if maxLen > 0 {
		if err := s.client.LTrim(ctx, key, 0, maxLen-1).Err(); err != nil {
			return unwrap(s.logger, "ltrim", key, fn.Err[bool](err), false)
		}
	}
	return true
}

// ListRange returns list entries [start, stop], or nil on failure.
func (s *Store) ListRange(ctx context.Context, key string, start, stop int64) []string {
	r := fn.FromPair(s.client.LRange(ctx, key, start, stop).Result())
	return unwrap(s.logger, "lrange", key, r, []string(nil))
}

// SortedSetIncr increments member's score in a sorted set.
func (s *Store) SortedSetIncr(ctx context.Context, key, member string, delta float64) bool {
	r := fn.FromPair(s.client.ZIncrBy(ctx, key, delta, member).Result())
	unwrap(s.logger, "zincrby", key, r, 0)
	return r.IsOk()
}

// Scored is one sorted-set member with its score.
type Scored struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// SortedSetTop returns the n highest-scored members, or nil on failure.
func (s *Store) SortedSetTop(ctx context.Context, key string, n int64) []Scored {
	r := fn.FromPair(s.client.ZRevRangeWithScores(ctx, key, 0, n-1).Result())
	zs := unwrap(s.logger, "zrevrange", key, r, []redis.Z(nil))
	if zs == nil {
		return nil
	}
	out := make([]Scored, 0, len(zs))
	for _, z := range zs {
		out = append(out, Scored{Member: fmt.Sprint(z.Member), Score: z.Score})
	}
	return out
}

// Health pings the store and returns the round-trip latency. Unlike the
// data operations this surfaces the error, for the health endpoint.
func (s *Store) Health(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.client.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("cache: %w: %v", domain.ErrUnavailable, err)
	}
	return time.Since(start), nil
}
