//go:build integration

package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/artikahq/authkit/pkg/authn"
)

func newTestStateStore(t *testing.T) *RedisStateStore {
	t.Helper()

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(connStr)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStateStore(client, "oauth_state_test")
}

func TestRedisStateStore(t *testing.T) {
	store := newTestStateStore(t)
	ctx := context.Background()

	t.Run("store then consume once", func(t *testing.T) {
		require.NoError(t, store.StoreState(ctx, "s1", time.Now().Add(time.Minute)))
		require.NoError(t, store.ConsumeState(ctx, "s1"))
		assert.ErrorIs(t, store.ConsumeState(ctx, "s1"), authn.ErrStateNotFound)
	})

	t.Run("unknown state", func(t *testing.T) {
		assert.ErrorIs(t, store.ConsumeState(ctx, "never-stored"), authn.ErrStateNotFound)
	})

	t.Run("expired state is gone", func(t *testing.T) {
		require.NoError(t, store.StoreState(ctx, "short", time.Now().Add(100*time.Millisecond)))
		time.Sleep(200 * time.Millisecond)
		assert.ErrorIs(t, store.ConsumeState(ctx, "short"), authn.ErrStateNotFound)
	})

	t.Run("concurrent consumers see one winner", func(t *testing.T) {
		require.NoError(t, store.StoreState(ctx, "raced", time.Now().Add(time.Minute)))

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if store.ConsumeState(ctx, "raced") == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})
}
