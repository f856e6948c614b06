package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stitchfold/backend/internal/models"
)

// FollowerCache keeps follower/following list snapshots in Redis so
// profile renders don't hit the primary store on every view. It is best
// effort: any cache failure reads through to the database.
type FollowerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFollowerCache creates a FollowerCache with the given TTL.
func NewFollowerCache(rdb *redis.Client, ttl time.Duration) *FollowerCache {
	return &FollowerCache{rdb: rdb, ttl: ttl}
}

func followersKey(userUID string) string { return fmt.Sprintf("followers:%s", userUID) }
func followingKey(userUID string) string { return fmt.Sprintf("following:%s", userUID) }

// GetFollowers returns the cached follower snapshot, reporting a miss on
// any error.
func (c *FollowerCache) GetFollowers(ctx context.Context, userUID string) ([]models.User, bool) {
	return c.get(ctx, followersKey(userUID))
}

// GetFollowing returns the cached following snapshot, reporting a miss on
// any error.
func (c *FollowerCache) GetFollowing(ctx context.Context, userUID string) ([]models.User, bool) {
	return c.get(ctx, followingKey(userUID))
}

// SetFollowers stores a follower snapshot.
func (c *FollowerCache) SetFollowers(ctx context.Context, userUID string, users []models.User) {
	c.set(ctx, followersKey(userUID), users)
}

// SetFollowing stores a following snapshot.
func (c *FollowerCache) SetFollowing(ctx context.Context, userUID string, users []models.User) {
	c.set(ctx, followingKey(userUID), users)
}

// Invalidate drops both snapshots for each user. Called after a follow
// toggle, which changes one user's following list and the other's
// follower list.
func (c *FollowerCache) Invalidate(ctx context.Context, userUIDs ...string) {
	keys := make([]string, 0, len(userUIDs)*2)
	for _, uid := range userUIDs {
		keys = append(keys, followersKey(uid), followingKey(uid))
	}
	if len(keys) > 0 {
		_ = c.rdb.Del(ctx, keys...).Err()
	}
}

func (c *FollowerCache) get(ctx context.Context, key string) ([]models.User, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false
	}
	return users, true
}

func (c *FollowerCache) set(ctx context.Context, key string, users []models.User) {
	payload, err := json.Marshal(users)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
}
