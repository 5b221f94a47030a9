// Package tokencache memoizes resolved bearer tokens.
package tokencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/logging"
)

// ErrMiss is returned by Store.Get for an absent key.
var ErrMiss = errors.New("cache miss")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore is a Store on top of go-redis.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

const keyPrefix = "auth:token:"

// Key derives the cache key of a token. Raw tokens never reach the cache.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Resolver caches successful resolutions of an inner resolver for ttl, or
// until the token's own exp claim if that comes first. Failures are never
// cached, and a broken cache only costs a warning.
type Resolver struct {
	inner auth.Resolver
	store Store
	ttl   time.Duration
	log   logging.Logger
}

func NewResolver(inner auth.Resolver, store Store, ttl time.Duration, log logging.Logger) *Resolver {
	return &Resolver{inner: inner, store: store, ttl: ttl, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, auth.ErrMissingCredential
	}
	key := Key(token)

	cached, err := r.store.Get(ctx, key)
	switch {
	case err == nil:
		if id, perr := uuid.Parse(cached); perr == nil {
			return id, nil
		}
		r.log.Warn(ctx, "token cache: bad entry", "key", key)
	case !errors.Is(err, ErrMiss):
		r.log.Warn(ctx, "token cache: get failed", "err", err)
	}

	id, err := r.inner.Resolve(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	ttl := r.lifetime(token)
	if ttl <= 0 {
		return id, nil
	}
	if err := r.store.Set(ctx, key, id.String(), ttl); err != nil {
		r.log.Warn(ctx, "token cache: set failed", "err", err)
	}
	return id, nil
}

// lifetime clamps the configured ttl to the remaining validity of token.
// The inner resolver has already verified the signature, so the claims are
// read unverified here. Opaque tokens get the full ttl.
func (r *Resolver) lifetime(token string) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return r.ttl
	}
	return min(r.ttl, time.Until(claims.ExpiresAt.Time))
}
