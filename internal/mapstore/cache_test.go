package mapstore

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisCache(rdb, nil), mr
}

func TestRedisCache_StoreAllReplacesHash(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.HSet(templatesKey, "removed_map", `{"name":"removed_map"}`)

	road := tilemap.Template{Name: "road", Width: 1, Height: 1, TileData: []uint32{0}}
	require.NoError(t, cache.StoreAll(ctx, []tilemap.Template{*tavern(), road}))

	keys, err := mr.HKeys(templatesKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tavern_outside", "road"}, keys)
}

func TestRedisCache_StoreAllEmptyClearsHash(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.HSet(templatesKey, "removed_map", `{"name":"removed_map"}`)

	require.NoError(t, cache.StoreAll(ctx, nil))
	assert.False(t, mr.Exists(templatesKey))
}

func TestRedisCache_Get(t *testing.T) {
	cache, _ := newTestCache(t)

	missing, err := cache.Get(ctx, "tavern_outside")
	require.NoError(t, err)
	assert.Nil(t, missing, "a miss is not an error")

	require.NoError(t, cache.StoreAll(ctx, []tilemap.Template{*tavern()}))

	got, err := cache.Get(ctx, "tavern_outside")
	require.NoError(t, err)
	assert.Equal(t, tavern(), got)
}

func TestRedisCache_SetAndNames(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(ctx, tavern()))
	require.NoError(t, cache.Set(ctx, &tilemap.Template{Name: "cellar", Width: 1, Height: 1, TileData: []uint32{1}}))

	names, err := cache.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cellar", "tavern_outside"}, names)
}

func TestRedisCache_PublishSubscribe(t *testing.T) {
	cache, _ := newTestCache(t)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan DeployEvent, 1)
	require.NoError(t, cache.SubscribeDeployed(subCtx, func(e DeployEvent) { events <- e }))

	sent := DeployEvent{
		BatchID:    "batch-1",
		Templates:  []string{"road", "tavern_outside"},
		DeployedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cache.PublishDeployed(ctx, sent))

	select {
	case got := <-events:
		assert.Equal(t, sent.BatchID, got.BatchID)
		assert.Equal(t, sent.Templates, got.Templates)
		assert.True(t, sent.DeployedAt.Equal(got.DeployedAt))
	case <-time.After(2 * time.Second):
		t.Fatal("deploy event not delivered")
	}
}

func TestRedisCache_SubscriberStopsOnCancel(t *testing.T) {
	cache, mr := newTestCache(t)
	subCtx, cancel := context.WithCancel(ctx)

	events := make(chan DeployEvent, 1)
	require.NoError(t, cache.SubscribeDeployed(subCtx, func(e DeployEvent) { events <- e }))
	assert.Equal(t, 1, mr.PubSubNumSub(DeployChannel)[DeployChannel])

	cancel()
	assert.Eventually(t, func() bool {
		return mr.PubSubNumSub(DeployChannel)[DeployChannel] == 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, cache.PublishDeployed(ctx, DeployEvent{BatchID: "late"}))
	assert.Never(t, func() bool { return len(events) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRedisCache_ServerDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.Get(ctx, "tavern_outside")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))

	err = cache.StoreAll(ctx, []tilemap.Template{*tavern()})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
}
