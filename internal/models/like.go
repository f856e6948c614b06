package models

import "time"

// Like records that a user liked a feed post. Posts live in Mongo, so
// PostID is the hex object id; the unique pair index keeps likes one per
// user per post and backs the post's denormalized likes_count.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"type:varchar(24);not null;index;uniqueIndex:idx_like_post_user"`
	UserUID   string    `json:"user_uid" gorm:"type:varchar(64);not null;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"created_at"`
}
