package blobstore

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// RedisClient is the subset of *redis.Client used by the Redis backend.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	StateKey(scope, name string) string
}

// Redis stores each blob as a string value under sf:state:<scope>:<name>.
type Redis struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedis wraps a redis client. A zero ttl keeps keys forever; otherwise
// every write refreshes the expiry.
func NewRedis(client RedisClient, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, scope, name string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.StateKey(scope, name))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read state from redis")
	}
	return []byte(value), true, nil
}

func (r *Redis) Set(ctx context.Context, scope, name string, blob []byte) error {
	if err := r.client.Set(ctx, r.client.StateKey(scope, name), string(blob), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write state to redis")
	}
	return nil
}
