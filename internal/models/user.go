package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account/profile. Designers are regular users with
// IsDesigner set; the storefront surfaces hang off the same record.
//
// FollowersCount and FollowingCount are denormalized aggregates owned by
// the follow toggle routine. No other code path may write them.
type User struct {
	UID            string    `json:"uid" gorm:"primaryKey;type:varchar(64)"`
	Username       string    `json:"username" gorm:"uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Password       string    `json:"-"` // Store hashed password, ignore for JSON serialization
	Avatar         string    `json:"avatar"`
	Description    string    `json:"description"`
	Specialty      string    `json:"specialty"`
	Location       string    `json:"location"`
	Rating         float64   `json:"rating"`
	Verified       bool      `json:"verified"`
	IsDesigner     bool      `json:"is_designer"`
	FollowersCount int       `json:"followers_count" gorm:"not null;default:0"`
	FollowingCount int       `json:"following_count" gorm:"not null;default:0"`
	PostsCount     int       `json:"posts_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name" validate:"omitempty,max=50"`
	LastName    string `json:"last_name" validate:"omitempty,max=50"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID will be provided by the client after Firebase Auth
}

type CreateLocalUserRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=50"`
	LastName  string `json:"last_name" validate:"omitempty,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Username    string  `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	FirstName   string  `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName    string  `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Avatar      string  `json:"avatar,omitempty" validate:"omitempty,url"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Specialty   string  `json:"specialty,omitempty" validate:"omitempty,max=100"`
	Location    string  `json:"location,omitempty" validate:"omitempty,max=100"`
	IsDesigner  *bool   `json:"is_designer,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
