package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// CartRepository defines the interface for cart data operations
type CartRepository interface {
	AddItem(userUID string, productID uint, quantity int) error
	UpdateQuantity(userUID string, productID uint, quantity int) error
	RemoveItem(userUID string, productID uint) error
	GetCart(userUID string) (*models.Cart, error)
	ClearCart(userUID string) error
}

// GormCartRepository implements CartRepository for the relational store
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AddItem adds a product to the cart, bumping the quantity when the line
// already exists. The read-then-write runs in a transaction so two rapid
// adds cannot produce duplicate lines past the unique pair index.
func (r *GormCartRepository) AddItem(userUID string, productID uint, quantity int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", productID, ErrNotFound)
			}
			return err
		}

		var item models.CartItem
		err := tx.Where("user_uid = ? AND product_id = ?", userUID, productID).First(&item).Error
		switch {
		case err == nil:
			return tx.Model(&item).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.CartItem{
				UserUID:   userUID,
				ProductID: productID,
				Quantity:  quantity,
			}).Error
		default:
			return err
		}
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *GormCartRepository) UpdateQuantity(userUID string, productID uint, quantity int) error {
	res := r.db.Model(&models.CartItem{}).
		Where("user_uid = ? AND product_id = ?", userUID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCartRepository) RemoveItem(userUID string, productID uint) error {
	res := r.db.Where("user_uid = ? AND product_id = ?", userUID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCart returns the cart lines with product details and the computed
// total. Totals are derived at read time, never stored.
func (r *GormCartRepository) GetCart(userUID string) (*models.Cart, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("user_uid = ?", userUID).
		Order("created_at").
		Find(&items).Error; err != nil {
		return nil, err
	}

	cart := &models.Cart{Items: items}
	for _, item := range items {
		if item.Product != nil {
			cart.TotalCents += item.Product.PriceCents * int64(item.Quantity)
		}
	}
	return cart, nil
}

func (r *GormCartRepository) ClearCart(userUID string) error {
	return r.db.Where("user_uid = ?", userUID).Delete(&models.CartItem{}).Error
}
