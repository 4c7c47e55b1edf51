package redisstore

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*Storage)(nil)

func setupTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, ""), mr
}

func TestNew(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := New(Config{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("k", []byte("v"), 0))
	assert.True(t, mr.Exists("test:k"))
}

func TestNew_ConnectionError(t *testing.T) {
	_, err := New(Config{Addr: "localhost:99999"})
	assert.Error(t, err)
}

func TestStorage_SetGetDelete(t *testing.T) {
	store, mr := setupTestStorage(t)

	val, err := store.Get("missing")
	assert.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("session-1", []byte("payload"), time.Minute))
	assert.True(t, mr.Exists(defaultPrefix+"session-1"))

	val, err = store.Get("session-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, store.Delete("session-1"))
	val, err = store.Get("session-1")
	assert.NoError(t, err)
	assert.Nil(t, val)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete("session-1"))
}

func TestStorage_Expiry(t *testing.T) {
	store, mr := setupTestStorage(t)

	require.NoError(t, store.Set("short", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	val, err := store.Get("short")
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestStorage_IgnoresEmpty(t *testing.T) {
	store, mr := setupTestStorage(t)

	assert.NoError(t, store.Set("", []byte("x"), 0))
	assert.NoError(t, store.Set("k", nil, 0))
	assert.Empty(t, mr.Keys())
}

func TestStorage_ResetOnlyTouchesPrefix(t *testing.T) {
	store, mr := setupTestStorage(t)

	require.NoError(t, mr.Set("other:key", "keep"))
	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))

	require.NoError(t, store.Reset())

	assert.False(t, mr.Exists(defaultPrefix+"a"))
	assert.False(t, mr.Exists(defaultPrefix+"b"))
	assert.True(t, mr.Exists("other:key"))
}
