package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry stored in MongoDB. Reels are posts with IsVideo
// set; product tie-ins carry IsProduct so the storefront can link them.
type Post struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserUID     string             `json:"user_uid" bson:"user_uid"`
	Caption     string             `json:"caption" bson:"caption"`
	Description string             `json:"description" bson:"description"`
	Tags        []string           `json:"tags" bson:"tags"`
	MediaURLs   []string           `json:"media_urls" bson:"media_urls"`
	IsVideo     bool               `json:"is_video" bson:"is_video"`
	IsProduct   bool               `json:"is_product" bson:"is_product"`
	LikesCount  int64              `json:"likes_count" bson:"likes_count"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type CreatePostRequest struct {
	Caption     string   `json:"caption" validate:"required,max=300"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags" validate:"omitempty,dive,max=40"`
	MediaURLs   []string `json:"media_urls" validate:"required,min=1,dive,url"`
	IsVideo     bool     `json:"is_video"`
	IsProduct   bool     `json:"is_product"`
}

type UpdatePostRequest struct {
	Caption     string   `json:"caption,omitempty" validate:"omitempty,max=300"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,max=40"`
}
