package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// WishlistRepository defines the interface for saved-product operations
type WishlistRepository interface {
	SaveProduct(userUID string, productID uint) error
	UnsaveProduct(userUID string, productID uint) error
	GetWishlist(userUID string) ([]models.WishlistItem, error)
	IsSaved(userUID string, productID uint) (bool, error)
}

// GormWishlistRepository implements WishlistRepository for the relational store
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// SaveProduct adds a product to the wishlist. Saving twice is a no-op.
func (r *GormWishlistRepository) SaveProduct(userUID string, productID uint) error {
	err := r.db.Create(&models.WishlistItem{UserUID: userUID, ProductID: productID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *GormWishlistRepository) UnsaveProduct(userUID string, productID uint) error {
	res := r.db.Where("user_uid = ? AND product_id = ?", userUID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormWishlistRepository) GetWishlist(userUID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Preload("Product").
		Where("user_uid = ?", userUID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *GormWishlistRepository) IsSaved(userUID string, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_uid = ? AND product_id = ?", userUID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
