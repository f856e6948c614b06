package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchfold/backend/internal/models"
)

func setupCache(t *testing.T) (*FollowerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFollowerCache(rdb, time.Minute), mr
}

func TestFollowerCache_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetFollowers(ctx, "alice")
	assert.False(t, ok, "cold cache misses")

	users := []models.User{{UID: "bob", Username: "bob"}, {UID: "carol", Username: "carol"}}
	c.SetFollowers(ctx, "alice", users)

	got, ok := c.GetFollowers(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, users, got)
}

func TestFollowerCache_InvalidateDropsBothSides(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.SetFollowers(ctx, "alice", []models.User{{UID: "bob"}})
	c.SetFollowing(ctx, "alice", []models.User{{UID: "carol"}})
	c.SetFollowers(ctx, "bob", []models.User{{UID: "alice"}})

	c.Invalidate(ctx, "alice", "bob")

	_, ok := c.GetFollowers(ctx, "alice")
	assert.False(t, ok)
	_, ok = c.GetFollowing(ctx, "alice")
	assert.False(t, ok)
	_, ok = c.GetFollowers(ctx, "bob")
	assert.False(t, ok)
}

func TestFollowerCache_ExpiresWithTTL(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.SetFollowers(ctx, "alice", []models.User{{UID: "bob"}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetFollowers(ctx, "alice")
	assert.False(t, ok)
}

func TestFollowerCache_BackendDownReadsThrough(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.SetFollowers(ctx, "alice", []models.User{{UID: "bob"}})
	mr.Close()

	_, ok := c.GetFollowers(ctx, "alice")
	assert.False(t, ok, "a broken cache reports a miss, never an error")
}
