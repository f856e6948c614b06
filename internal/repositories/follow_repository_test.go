package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

func setupFollowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The in-memory sqlite DB is per-connection; pin the pool to one.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Follow{}), "migrate")

	for _, uid := range []string{"alice", "bob", "carol"} {
		require.NoError(t, db.Create(&models.User{
			UID:      uid,
			Username: uid,
			Email:    uid + "@example.com",
		}).Error, "seed user %s", uid)
	}
	return db
}

func getUser(t *testing.T, db *gorm.DB, uid string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("uid = ?", uid).First(&user).Error)
	return &user
}

func getEdge(t *testing.T, db *gorm.DB, follower, following string) *models.Follow {
	t.Helper()
	var edge models.Follow
	err := db.Where("follower_id = ? AND following_id = ?", follower, following).First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return &edge
}

func TestToggleFollow_CreatesEdgeAndCounters(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	following, err := repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)

	edge := getEdge(t, db, "alice", "bob")
	require.NotNil(t, edge)
	assert.False(t, edge.Mutual, "one-way follow must not be mutual")

	assert.Equal(t, 1, getUser(t, db, "alice").FollowingCount)
	assert.Equal(t, 0, getUser(t, db, "alice").FollowersCount)
	assert.Equal(t, 1, getUser(t, db, "bob").FollowersCount)
	assert.Equal(t, 0, getUser(t, db, "bob").FollowingCount)

	state, err := repo.FollowStatus(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.Following, state)

	state, err = repo.FollowStatus(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, models.NotFollowing, state)
}

func TestToggleFollow_MutualFlagBothDirections(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	_, err := repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "bob", "alice")
	require.NoError(t, err)

	forward := getEdge(t, db, "alice", "bob")
	reverse := getEdge(t, db, "bob", "alice")
	require.NotNil(t, forward)
	require.NotNil(t, reverse)
	assert.True(t, forward.Mutual, "existing edge gains mutual when reverse is created")
	assert.True(t, reverse.Mutual, "new edge starts mutual when forward exists")

	assert.Equal(t, 1, getUser(t, db, "alice").FollowersCount)
	assert.Equal(t, 1, getUser(t, db, "alice").FollowingCount)
	assert.Equal(t, 1, getUser(t, db, "bob").FollowersCount)
	assert.Equal(t, 1, getUser(t, db, "bob").FollowingCount)

	// alice unfollows: her edge goes away and bob's loses mutual.
	following, err := repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)

	assert.Nil(t, getEdge(t, db, "alice", "bob"))
	reverse = getEdge(t, db, "bob", "alice")
	require.NotNil(t, reverse)
	assert.False(t, reverse.Mutual)

	assert.Equal(t, 0, getUser(t, db, "alice").FollowingCount)
	assert.Equal(t, 1, getUser(t, db, "alice").FollowersCount)
	assert.Equal(t, 0, getUser(t, db, "bob").FollowersCount)
	assert.Equal(t, 1, getUser(t, db, "bob").FollowingCount)
}

func TestToggleFollow_TwiceRestoresOriginalState(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	// Put some unrelated state in place first.
	_, err := repo.ToggleFollow(ctx, "carol", "alice")
	require.NoError(t, err)

	before := map[string]*models.User{
		"alice": getUser(t, db, "alice"),
		"bob":   getUser(t, db, "bob"),
	}

	_, err = repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)

	assert.Nil(t, getEdge(t, db, "alice", "bob"))
	for uid, u := range before {
		after := getUser(t, db, uid)
		assert.Equal(t, u.FollowersCount, after.FollowersCount, "%s followers_count", uid)
		assert.Equal(t, u.FollowingCount, after.FollowingCount, "%s following_count", uid)
	}
}

func TestToggleFollow_SelfFollowRejectedWithoutWrites(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)

	_, err := repo.ToggleFollow(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	assert.Zero(t, edges)
	assert.Equal(t, 0, getUser(t, db, "alice").FollowersCount)
	assert.Equal(t, 0, getUser(t, db, "alice").FollowingCount)
}

func TestToggleFollow_EmptyIDRejected(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	_, err := repo.ToggleFollow(ctx, "", "bob")
	assert.ErrorIs(t, err, ErrEmptyUserID)
	_, err = repo.ToggleFollow(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestToggleFollow_CountersFloorAtZero(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)

	// An edge that exists without its counter increments, as if a partial
	// failure had already drifted the counters low.
	require.NoError(t, db.Create(&models.Follow{FollowerID: "alice", FollowingID: "bob"}).Error)

	following, err := repo.ToggleFollow(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)

	assert.Equal(t, 0, getUser(t, db, "alice").FollowingCount)
	assert.Equal(t, 0, getUser(t, db, "bob").FollowersCount)
}

func TestToggleFollow_CountersMatchEdgesAfterSequence(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	pairs := [][2]string{
		{"alice", "bob"}, {"bob", "alice"}, {"alice", "carol"},
		{"carol", "bob"}, {"alice", "bob"}, {"carol", "alice"},
		{"bob", "carol"}, {"carol", "bob"}, {"alice", "bob"},
	}
	for _, p := range pairs {
		_, err := repo.ToggleFollow(ctx, p[0], p[1])
		require.NoError(t, err)
	}

	for _, uid := range []string{"alice", "bob", "carol"} {
		user := getUser(t, db, uid)
		followers, err := repo.GetFollowersCount(uid)
		require.NoError(t, err)
		following, err := repo.GetFollowingCount(uid)
		require.NoError(t, err)
		assert.Equal(t, followers, int64(user.FollowersCount), "%s followers drifted", uid)
		assert.Equal(t, following, int64(user.FollowingCount), "%s following drifted", uid)
	}
}

func TestUnfollow_StaleEdgeRollsBack(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	_, err := repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	stale := getEdge(t, db, "alice", "bob")
	require.NotNil(t, stale)

	// A concurrent toggle pair settles first: the snapshot row is gone
	// and a fresh edge exists under a new id.
	_, err = repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return repo.unfollow(tx, stale)
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The losing transaction rolled back: the fresh edge survives and the
	// counters still match it.
	require.NotNil(t, getEdge(t, db, "alice", "bob"))
	assert.Equal(t, 1, getUser(t, db, "alice").FollowingCount)
	assert.Equal(t, 1, getUser(t, db, "bob").FollowersCount)
}

func TestToggleFollow_MutualRecomputedFromExistingEdges(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)

	// A reverse edge whose mutual flag is wrong, the residue of two
	// opposite follows that raced each other.
	require.NoError(t, db.Create(&models.Follow{FollowerID: "bob", FollowingID: "alice"}).Error)

	_, err := repo.ToggleFollow(context.Background(), "alice", "bob")
	require.NoError(t, err)

	forward := getEdge(t, db, "alice", "bob")
	reverse := getEdge(t, db, "bob", "alice")
	require.NotNil(t, forward)
	require.NotNil(t, reverse)
	assert.True(t, forward.Mutual, "new edge sees the existing reverse edge")
	assert.True(t, reverse.Mutual, "stale reverse flag is repaired")
}

func TestToggleFollow_ConcurrentDuplicateSurfacesConflict(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)

	// Slip the same edge in on the toggle's own connection right before
	// its insert, like a second writer committing first.
	err := db.Callback().Create().Before("gorm:create").Register("concurrent_writer", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Follow); !ok {
			return
		}
		_, execErr := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO follows (follower_id, following_id, mutual, created_at) VALUES (?, ?, ?, ?)",
			"alice", "bob", false, time.Now())
		require.NoError(t, execErr)
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Create().Remove("concurrent_writer"))
	})

	_, err = repo.ToggleFollow(context.Background(), "alice", "bob")
	assert.ErrorIs(t, err, ErrConflict)

	// The losing transaction rolled back everything, its counter
	// increments included.
	assert.Equal(t, 0, getUser(t, db, "alice").FollowingCount)
	assert.Equal(t, 0, getUser(t, db, "bob").FollowersCount)
}

func TestFollowStatus_EmptyIDsShortCircuit(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	state, err := repo.FollowStatus(ctx, "", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.NotFollowing, state)

	state, err = repo.FollowStatus(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, models.NotFollowing, state)
}

func TestFollowStatus_BackendFailureIsUnknown(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	state, err := repo.FollowStatus(context.Background(), "alice", "bob")
	assert.Error(t, err)
	assert.Equal(t, models.StateUnknown, state)
	assert.False(t, state.Bool(), "unknown collapses to false for display")
}

func TestFollowEdge_DuplicatePairRejectedByIndex(t *testing.T) {
	db := setupFollowTestDB(t)

	require.NoError(t, db.Create(&models.Follow{FollowerID: "alice", FollowingID: "bob"}).Error)
	err := db.Create(&models.Follow{FollowerID: "alice", FollowingID: "bob"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey,
		"composite index must reject the second writer so the losing transaction rolls back")
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	_, err := repo.ToggleFollow(ctx, "bob", "alice")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "carol", "alice")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)

	followers, err := repo.GetFollowers("alice")
	require.NoError(t, err)
	followerUIDs := make([]string, 0, len(followers))
	for _, u := range followers {
		followerUIDs = append(followerUIDs, u.UID)
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, followerUIDs)

	followingIDs, err := repo.GetFollowingIDs("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, followingIDs)
}
