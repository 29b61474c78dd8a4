// Package sessions persists anonymous session tokens in Redis. A token is
// the key an anonymous shopper's cart hangs off until login merges it away.
package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the anonymous session token.
const CookieName = "storefront_session"

const keyPrefix = "session:"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient connects to Redis and verifies the connection.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Issue persists a fresh session token and returns it. Persisting the
// token is an observable side effect of first anonymous contact.
func (s *Store) Issue(ctx context.Context) (string, error) {
	key := uuid.NewString()
	issuedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.rdb.Set(ctx, keyPrefix+key, issuedAt, s.ttl).Err(); err != nil {
		return "", err
	}
	return key, nil
}

// Touch reports whether the token is still live and refreshes its TTL.
func (s *Store) Touch(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.Expire(ctx, keyPrefix+key, s.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
