package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artikahq/authkit/pkg/authn"
)

// RedisStateStore holds one-time OAuth state tokens in Redis, giving the
// consume-exactly-once guarantee across processes. GETDEL makes the check
// and removal a single atomic operation.
type RedisStateStore struct {
	client redis.UniversalClient
	prefix string
}

var _ authn.StateStore = (*RedisStateStore)(nil)

// NewRedisStateStore creates a state store with the given key prefix.
func NewRedisStateStore(client redis.UniversalClient, prefix string) *RedisStateStore {
	if prefix == "" {
		prefix = "oauth_state"
	}
	return &RedisStateStore{client: client, prefix: prefix}
}

func (s *RedisStateStore) StoreState(ctx context.Context, state string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(state), "1", ttl).Err(); err != nil {
		return fmt.Errorf("store oauth state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) ConsumeState(ctx context.Context, state string) error {
	val, err := s.client.GetDel(ctx, s.key(state)).Result()
	if err == redis.Nil {
		return authn.ErrStateNotFound
	}
	if err != nil {
		return fmt.Errorf("consume oauth state: %w", err)
	}
	if val == "" {
		return authn.ErrStateNotFound
	}
	return nil
}

func (s *RedisStateStore) key(state string) string {
	return s.prefix + ":" + state
}
