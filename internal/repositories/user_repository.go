package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// UserRepository defines the interface for user data operations.
// Follower/following counters are owned by FollowRepository.ToggleFollow
// and are deliberately absent here.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByUID(uid string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers() ([]models.User, error)
	GetDesigners() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(uid string) error
	SearchUsers(query string) ([]models.User, error)
	IncrementPostsCount(uid string, delta int) error
}

// GormUserRepository implements UserRepository on the relational store.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser creates a new user record.
func (r *GormUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByUID retrieves a user by their opaque identifier.
func (r *GormUserRepository) GetUserByUID(uid string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *GormUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *GormUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users.
func (r *GormUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetDesigners retrieves designer accounts for the designer surface,
// verified profiles first.
func (r *GormUserRepository) GetDesigners() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_designer = ?", true).
		Order("verified DESC, rating DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing user record.
func (r *GormUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser deletes a user by identifier.
func (r *GormUserRepository) DeleteUser(uid string) error {
	return r.db.Where("uid = ?", uid).Delete(&models.User{}).Error
}

// SearchUsers searches for users by username or email (case-insensitive).
func (r *GormUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
		"%"+query+"%", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// IncrementPostsCount adjusts the denormalized posts counter, flooring at
// zero on deletes.
func (r *GormUserRepository) IncrementPostsCount(uid string, delta int) error {
	if delta >= 0 {
		return r.db.Model(&models.User{}).Where("uid = ?", uid).
			UpdateColumn("posts_count", gorm.Expr("posts_count + ?", delta)).Error
	}
	return r.db.Model(&models.User{}).Where("uid = ?", uid).
		UpdateColumn("posts_count",
			gorm.Expr("CASE WHEN posts_count + ? > 0 THEN posts_count + ? ELSE 0 END", delta, delta)).Error
}
