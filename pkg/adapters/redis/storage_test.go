package redis_test

import (
	"testing"
	"time"

	"github.com/Semihazah/skein/internal/logging"
	"github.com/Semihazah/skein/pkg/adapters/redis"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T, opts ...redis.Option) (*redis.VariableStorage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	opts = append(opts, redis.WithLogger(logging.NewNop()))
	return redis.NewFromClient(client, opts...), mr
}

func TestVariableStorage_RoundTrip(t *testing.T) {
	store, _ := newStorage(t)

	store.SetValue("$gold", float32(42))
	store.SetValue("$name", "Ann")
	store.SetValue("$seen_intro", true)

	gold, ok := store.GetValue("$gold")
	require.True(t, ok)
	assert.Equal(t, float32(42), gold)

	name, ok := store.GetValue("$name")
	require.True(t, ok)
	assert.Equal(t, "Ann", name)

	seen, ok := store.GetValue("$seen_intro")
	require.True(t, ok)
	assert.Equal(t, true, seen)

	_, ok = store.GetValue("$missing")
	assert.False(t, ok)
}

func TestVariableStorage_Clear(t *testing.T) {
	store, _ := newStorage(t)

	store.SetValue("$a", float32(1))
	store.SetValue("$b", float32(2))
	store.Clear()

	_, ok := store.GetValue("$a")
	assert.False(t, ok)
	_, ok = store.GetValue("$b")
	assert.False(t, ok)
}

func TestVariableStorage_TTL(t *testing.T) {
	store, mr := newStorage(t, redis.WithTTL(time.Second))

	store.SetValue("$gold", float32(7))
	_, ok := store.GetValue("$gold")
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok = store.GetValue("$gold")
	assert.False(t, ok)
}

func TestVariableStorage_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})

	a := redis.NewFromClient(client, redis.WithPrefix("save1:"), redis.WithLogger(logging.NewNop()))
	b := redis.NewFromClient(client, redis.WithPrefix("save2:"), redis.WithLogger(logging.NewNop()))

	a.SetValue("$gold", float32(1))
	b.SetValue("$gold", float32(2))
	a.Clear()

	_, ok := a.GetValue("$gold")
	assert.False(t, ok)
	gold, ok := b.GetValue("$gold")
	require.True(t, ok)
	assert.Equal(t, float32(2), gold)
}
