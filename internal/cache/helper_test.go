package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAside_HitAndMiss(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			calls++
			dest.Name = "fresh"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, SessionKey("tok"), &first, time.Minute, fetch(&first)))
	assert.Equal(t, "fresh", first.Name)
	assert.True(t, mr.Exists("session:tok"))

	var second cachedThing
	require.NoError(t, Aside(ctx, SessionKey("tok"), &second, time.Minute, fetch(&second)))
	assert.Equal(t, "fresh", second.Name)
	assert.Equal(t, 1, calls)

	InvalidateSession(ctx, "tok")
	assert.False(t, mr.Exists("session:tok"))
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := withMiniredis(t)

	var dest cachedThing
	err := Aside(context.Background(), ProfileKey("u1"), &dest, time.Minute, func() error {
		return errors.New("db down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("profile:u1"))
}

func TestAside_NoRedis(t *testing.T) {
	SetClient(nil)

	var dest cachedThing
	err := Aside(context.Background(), SessionKey("x"), &dest, time.Minute, func() error {
		dest.Name = "db"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "db", dest.Name)

	found, err := GetJSON(context.Background(), "missing", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestInitRedis_Unreachable(t *testing.T) {
	assert.Nil(t, InitRedis("127.0.0.1:1"))
	assert.Nil(t, GetClient())
}

func TestInitRedis_URL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	assert.Same(t, rdb, GetClient())
}
