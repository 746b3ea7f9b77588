package cache

import (
	"context"
	"testing"
	"time"

	"bevin/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func newTestCache(t *testing.T) (*ReplyCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewReplyCacheWithClient(client, time.Minute, nil), mr
}

func TestReplyCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	resp := &model.ChatResponse{
		Message: "Here is a strong pick:",
		Picks: []model.Pick{
			{Index: 0, UUID: "a", Name: "Mango Cloud", Price: fptr(6), Tags: []string{"mango"}},
		},
		Raw: &model.ChatMeta{Count: 1},
	}

	key := Key("tropical drink under $8", 10, nil)
	c.Set(ctx, key, resp)

	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, resp, got)
}

func TestReplyCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok := c.Get(context.Background(), Key("never stored", 10, nil))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestReplyCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key := Key("mango", 10, nil)
	c.Set(ctx, key, &model.ChatResponse{Message: "cached"})

	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)
}

func TestReplyCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)

	key := Key("mango", 10, nil)
	require.NoError(t, mr.Set(key, "{not json"))

	got, ok := c.Get(context.Background(), key)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestKey(t *testing.T) {
	base := Key("tropical", 10, nil)

	t.Run("stable for identical input", func(t *testing.T) {
		assert.Equal(t, base, Key("tropical", 10, nil))
	})

	t.Run("prefixed for namespacing", func(t *testing.T) {
		assert.Contains(t, base, "bevin:chat:")
	})

	t.Run("varies with message", func(t *testing.T) {
		assert.NotEqual(t, base, Key("citrus", 10, nil))
	})

	t.Run("varies with limit", func(t *testing.T) {
		assert.NotEqual(t, base, Key("tropical", 5, nil))
	})

	t.Run("varies with filters", func(t *testing.T) {
		withFilters := Key("tropical", 10, &model.ChatFilters{MaxPrice: fptr(8)})
		assert.NotEqual(t, base, withFilters)
	})
}
