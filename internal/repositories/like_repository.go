package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// LikeRepository defines the interface for post-like data operations
type LikeRepository interface {
	CreateLike(postID, userUID string) error
	DeleteLike(postID, userUID string) error
	HasUserLikedPost(postID, userUID string) (bool, error)
	GetLikesCount(postID string) (int64, error)
}

// GormLikeRepository implements LikeRepository for the relational store
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike records a like. The unique (post_id, user_uid) index keeps a
// double-tap from counting twice; the duplicate surfaces as ErrConflict.
func (r *GormLikeRepository) CreateLike(postID, userUID string) error {
	err := r.db.Create(&models.Like{PostID: postID, UserUID: userUID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *GormLikeRepository) DeleteLike(postID, userUID string) error {
	res := r.db.Where("post_id = ? AND user_uid = ?", postID, userUID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormLikeRepository) HasUserLikedPost(postID, userUID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_uid = ?", postID, userUID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormLikeRepository) GetLikesCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
