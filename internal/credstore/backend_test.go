package credstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/config"
	"github.com/spec-kit/sojus-client/internal/persistence"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SOJUS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SOJUS_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := persistence.NewRedis(ctx, config.RedisConfig{Addr: addr}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(rdb.Close)

	prefix := "sojus-test:" + uuid.NewString() + ":"
	store := NewRedisStore(rdb.Client, prefix, nil)
	exerciseStore(t, store)

	t.Run("half record loads empty", func(t *testing.T) {
		require.NoError(t, rdb.Client.Set(ctx, prefix+"token", "orphan", 0).Err())
		t.Cleanup(func() { rdb.Client.Del(ctx, prefix+"token") })

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, got.Empty())
	})
}

func TestRedisStoreUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedisStore(client, "x:", nil).Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SOJUS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SOJUS_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	require.NoError(t, persistence.RunMigrations(ctx, pg.PoolHandle(), zap.NewNop()))

	exerciseStore(t, NewPostgresStore(pg.PoolHandle(), "test-"+uuid.NewString(), nil))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := Open(ctx, &config.Config{Store: config.StoreConfig{Backend: config.StoreMemory}}, zap.NewNop())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &MemoryStore{}, store)

	store, closeFn, err = Open(ctx, &config.Config{Store: config.StoreConfig{Backend: config.StoreFile, Path: t.TempDir() + "/s.json"}}, zap.NewNop())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &FileStore{}, store)

	_, closeFn, err = Open(ctx, &config.Config{Store: config.StoreConfig{Backend: "floppy"}}, zap.NewNop())
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
