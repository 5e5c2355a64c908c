package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	pkgredis "github.com/angelmondragon/storefront/pkg/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisSlotUsesNamespacedKeyAndTTL(t *testing.T) {
	fake := newFakeRedis()
	slots := NewRedisSlots(pkgredis.NewWithCmdable(fake), 30*time.Minute)
	ctx := context.Background()

	store := NewStore(slots.Slot(testSession))
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.AddItem(ctx, "Widget", "9.99"))

	assert.JSONEq(t, `[{"name":"Widget","price":"9.99","quantity":1}]`, fake.values["sf:cart:"+testSession])
	assert.Equal(t, 30*time.Minute, fake.ttls["sf:cart:"+testSession])

	reloaded := NewStore(slots.Slot(testSession))
	require.NoError(t, reloaded.Initialize(ctx))
	assertSameItems(t, store.Items(), reloaded.Items())

	require.NoError(t, slots.Slot(testSession).Clear(ctx))
	_, found, err := slots.Slot(testSession).Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisSlotLoadFailure(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("i/o timeout")
	slots := NewRedisSlots(pkgredis.NewWithCmdable(fake), 0)

	store := NewStore(slots.Slot(testSession))
	err := store.Initialize(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
}
