package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Get("users")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should not report a value")

	require.NoError(t, kv.Set("users", `[{"id":1}]`))
	v, ok, err := kv.Get("users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, kv.Set("users", `[]`))
	v, _, err = kv.Get("users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "second write replaces the first")

	require.NoError(t, kv.Remove("users"))
	_, ok, err = kv.Get("users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Remove("users"), "removing an absent key is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", "")
	require.NoError(t, err)
	defer s.Close()

	exerciseKV(t, s)
}

func TestSQLiteStorePrefixIsolatesKeys(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", "portal-escolar-")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("courses", "[]"))

	var raw string
	require.NoError(t, s.db.QueryRow("SELECT key FROM kv_store").Scan(&raw))
	assert.Equal(t, "portal-escolar-courses", raw)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	s, err := NewRedisStore(RedisOptions{Addr: addr, Prefix: "portal-test-"})
	require.NoError(t, err)
	defer s.Close()

	exerciseKV(t, s)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Options{Driver: "etcd"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}

func TestNewMemoryDriver(t *testing.T) {
	kv, err := New(Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, kv)
	assert.NoError(t, Close(kv))
}

func TestDriverErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := wrapDriverError(ErrTypeQuery, "failed to write users", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "QUERY_ERROR")
}
