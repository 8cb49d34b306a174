package cachesvc

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/billing"
)

func newTestClient(t *testing.T) (RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

type sutra struct {
	Book   int    `json:"book"`
	Number int    `json:"sutra_number"`
	Title  string `json:"title"`
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	cache := NewCache(client, core.NewTestConfig())

	var got []sutra
	found, err := cache.Get(ctx, "content:sutras:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := []sutra{{Book: 1, Number: 1, Title: "Now, the teaching"}}
	require.NoError(t, cache.Set(ctx, "content:sutras:1", want))
	assert.True(t, mr.Exists("dailysutra:content:sutras:1"))
	assert.Equal(t, time.Hour, mr.TTL("dailysutra:content:sutras:1"))

	found, err = cache.Get(ctx, "content:sutras:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Delete(ctx, "content:sutras:1", "content:glossary"))
	found, err = cache.Get(ctx, "content:sutras:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	mr.FastForward(2 * time.Hour)
	require.NoError(t, cache.Set(ctx, "k", 1))
	mr.FastForward(2 * time.Hour)
	var n int
	found, err = cache.Get(ctx, "k", &n)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheCorruptedValue(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewCache(client, core.NewTestConfig())
	require.NoError(t, mr.Set("dailysutra:k", "{not json"))

	var dst map[string]interface{}
	found, err := cache.Get(context.Background(), "k", &dst)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestEventLogs(t *testing.T) {
	client, _ := newTestClient(t)
	logs := map[string]billing.EventLog{
		"redis":  NewEventLog(client, core.NewTestConfig()),
		"memory": NewMemoryEventLog(core.NewTestConfig()),
	}
	for name, log := range logs {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ok, err := log.Claim(ctx, "evt_1")
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = log.Claim(ctx, "evt_1")
			require.NoError(t, err)
			assert.False(t, ok, "already claimed")

			require.NoError(t, log.Release(ctx, "evt_1"))
			ok, err = log.Claim(ctx, "evt_1")
			require.NoError(t, err)
			assert.True(t, ok, "claimable after release")
		})
	}
}

func TestMemoryEventLogExpiry(t *testing.T) {
	ctx := context.Background()
	conf := core.NewTestConfig()
	log := NewMemoryEventLog(conf)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return now }

	ok, err := log.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(conf.Redis.EventTTL - time.Second)
	ok, err = log.Claim(ctx, "evt_2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = log.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, ok, "still within the TTL")

	now = now.Add(time.Second)
	ok, err = log.Claim(ctx, "evt_3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, log.events, "evt_1", "forgotten after the TTL")
	assert.Contains(t, log.events, "evt_2")
}
