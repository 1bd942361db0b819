package cachestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"listing-site/internal/core/port"
	"listing-site/pkg/postgres"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore проверяет общий контракт хранилища
func exerciseStore(t *testing.T, store port.CacheStorePort) {
	t.Helper()
	ctx := context.Background()
	const key = "bangHangDataCache"

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	first := []byte(`{"timestamp":1,"data":{"data":[]}}`)
	require.NoError(t, store.Set(ctx, key, first))

	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, string(first), string(got))

	second := []byte(`{"timestamp":2,"data":{"data":[{"MÃ CĂN":"A"}]}}`)
	require.NoError(t, store.Set(ctx, key, second))
	got, _, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, string(second), string(got))

	require.NoError(t, store.Delete(ctx, key))
	_, found, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	// удаление отсутствующего ключа - не ошибка
	require.NoError(t, store.Delete(ctx, key))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	exerciseStore(t, store)

	// временные файлы не остаются
	require.NoError(t, store.Set(context.Background(), "k", []byte(`{}`)))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileStoreUnsafeKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	p := store.path("../../etc/passwd")
	assert.Equal(t, store.dir, filepath.Dir(p))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisStore(client, "listing-site:")
	require.NoError(t, err)

	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "x", []byte("1")))
	assert.True(t, mr.Exists("listing-site:x"))
	assert.Equal(t, int64(0), int64(mr.TTL("listing-site:x")))
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store, err := NewPostgresStore(pool)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))

	exerciseStore(t, store)
}

func TestConstructorsRejectNil(t *testing.T) {
	_, err := NewRedisStore(nil, "")
	assert.Error(t, err)
	_, err = NewPostgresStore(nil)
	assert.Error(t, err)
	_, err = NewFileStore("")
	assert.Error(t, err)
}
