package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// FollowRepository defines the interface for follow data operations.
//
// ToggleFollow is the only code path allowed to write follow edges or the
// denormalized follower/following counters on users.
type FollowRepository interface {
	ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error)
	FollowStatus(ctx context.Context, followerID, followingID string) (models.FollowState, error)
	GetFollowers(userUID string) ([]models.User, error)
	GetFollowing(userUID string) ([]models.User, error)
	GetFollowersCount(userUID string) (int64, error)
	GetFollowingCount(userUID string) (int64, error)
	GetFollowingIDs(userUID string) ([]string, error)
}

// defaultToggleTimeout bounds the follow transaction; a timeout rolls back
// and surfaces as a retryable error, never as silent success.
const defaultToggleTimeout = 5 * time.Second

// GormFollowRepository implements FollowRepository on the relational store.
type GormFollowRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormFollowRepository creates a new GormFollowRepository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db, timeout: defaultToggleTimeout}
}

// WithTimeout overrides the transaction deadline, mainly for tests.
func (r *GormFollowRepository) WithTimeout(d time.Duration) *GormFollowRepository {
	r.timeout = d
	return r
}

// ToggleFollow flips the follow relationship from followerID to
// followingID and reports the resulting state (true = now following).
//
// The existence check, edge write, reverse-edge mutual flag and both
// counter updates run in one transaction, so a mid-sequence failure rolls
// back cleanly. Both halves are guarded against concurrent toggles of the
// same pair: edge creation is conditional on prior non-existence via the
// unique (follower_id, following_id) index, and edge deletion is
// conditional on the row still existing (RowsAffected). The losing side
// rolls back including its counter updates and the caller gets
// ErrConflict.
func (r *GormFollowRepository) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" || followingID == "" {
		return false, ErrEmptyUserID
	}
	if followerID == followingID {
		return false, ErrSelfFollow
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var nowFollowing bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge models.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			First(&edge).Error
		switch {
		case err == nil:
			nowFollowing = false
			return r.unfollow(tx, &edge)
		case errors.Is(err, gorm.ErrRecordNotFound):
			nowFollowing = true
			return r.follow(tx, followerID, followingID)
		default:
			return err
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return false, ErrConflict
		case errors.Is(err, context.DeadlineExceeded):
			return false, fmt.Errorf("follow toggle timed out: %w", err)
		}
		return false, err
	}
	return nowFollowing, nil
}

// follow creates edge (A,B), recomputes the mutual flag on both pair
// directions and bumps both counters. Runs inside the toggle transaction.
func (r *GormFollowRepository) follow(tx *gorm.DB, followerID, followingID string) error {
	edge := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}
	if err := tx.Create(edge).Error; err != nil {
		return err
	}

	// Mutual is derived from edge existence at update time rather than a
	// pre-insert read, so two opposite follows settling in either order
	// converge on the same flags.
	for _, pair := range [][2]string{{followerID, followingID}, {followingID, followerID}} {
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", pair[0], pair[1]).
			UpdateColumn("mutual", gorm.Expr(
				"EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND following_id = ?)",
				pair[1], pair[0])).Error; err != nil {
			return err
		}
	}

	if err := tx.Model(&models.User{}).Where("uid = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("uid = ?", followingID).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

// unfollow deletes the edge, clears the reverse edge's mutual flag and
// decrements both counters, flooring at zero. Runs inside the toggle
// transaction.
func (r *GormFollowRepository) unfollow(tx *gorm.DB, edge *models.Follow) error {
	// Deleting zero rows means a concurrent toggle removed this edge
	// after we read it; the decrements below must not apply, so surface
	// a conflict and let the transaction roll back.
	res := tx.Delete(&models.Follow{}, edge.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	if err := tx.Model(&models.User{}).Where("uid = ?", edge.FollowerID).
		UpdateColumn("following_count",
			gorm.Expr("CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.User{}).Where("uid = ?", edge.FollowingID).
		UpdateColumn("followers_count",
			gorm.Expr("CASE WHEN followers_count > 0 THEN followers_count - 1 ELSE 0 END")).Error; err != nil {
		return err
	}

	// The relationship is no longer mutual from either side.
	return tx.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", edge.FollowingID, edge.FollowerID).
		Update("mutual", false).Error
}

// FollowStatus reports whether followerID currently follows followingID.
// Empty identifiers short-circuit to NotFollowing without a query. A
// failed lookup returns StateUnknown plus the error; the caller decides
// whether to collapse that to false for display.
func (r *GormFollowRepository) FollowStatus(ctx context.Context, followerID, followingID string) (models.FollowState, error) {
	if followerID == "" || followingID == "" {
		return models.NotFollowing, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return models.StateUnknown, err
	}
	if count > 0 {
		return models.Following, nil
	}
	return models.NotFollowing, nil
}

func (r *GormFollowRepository) GetFollowers(userUID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("uid IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", userUID),
	).Find(&users).Error
	return users, err
}

func (r *GormFollowRepository) GetFollowing(userUID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("uid IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", userUID),
	).Find(&users).Error
	return users, err
}

func (r *GormFollowRepository) GetFollowersCount(userUID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userUID).Count(&count).Error
	return count, err
}

func (r *GormFollowRepository) GetFollowingCount(userUID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userUID).Count(&count).Error
	return count, err
}

func (r *GormFollowRepository) GetFollowingIDs(userUID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userUID).Pluck("following_id", &ids).Error
	return ids, err
}
