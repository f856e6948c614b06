package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

func setupLikeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Like{}))
	return db
}

func TestLike_DoubleTapCountsOnce(t *testing.T) {
	db := setupLikeTestDB(t)
	repo := NewGormLikeRepository(db)

	const post = "64f0c2a9e1b2c3d4e5f60718"
	require.NoError(t, repo.CreateLike(post, "alice"))
	assert.ErrorIs(t, repo.CreateLike(post, "alice"), ErrConflict)

	count, err := repo.GetLikesCount(post)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err := repo.HasUserLikedPost(post, "alice")
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repo.DeleteLike(post, "alice"))
	assert.ErrorIs(t, repo.DeleteLike(post, "alice"), ErrNotFound)
}
