package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	CreateFromCart(buyerUID string) (*models.Order, error)
	GetOrderByNumber(number string) (*models.Order, error)
	GetOrdersByBuyer(buyerUID string) ([]models.Order, error)
	GetOrdersForDesigner(designerUID string) ([]models.Order, error)
	UpdateStatus(number, status string) error
}

// GormOrderRepository implements OrderRepository for the relational store
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateFromCart snapshots the buyer's cart into an order, decrements
// stock and clears the cart, all in one transaction. Insufficient stock
// on any line aborts the whole checkout.
func (r *GormOrderRepository) CreateFromCart(buyerUID string) (*models.Order, error) {
	order := &models.Order{
		Number:   uuid.NewString(),
		BuyerUID: buyerUID,
		Status:   models.OrderStatusPlaced,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").
			Where("user_uid = ?", buyerUID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		for _, item := range items {
			if item.Product == nil {
				return fmt.Errorf("cart references product %d: %w", item.ProductID, ErrNotFound)
			}
			if item.Product.Stock < item.Quantity {
				return fmt.Errorf("%q: %w", item.Product.Name, ErrOutOfStock)
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   item.ProductID,
				DesignerUID: item.Product.DesignerUID,
				Name:        item.Product.Name,
				PriceCents:  item.Product.PriceCents,
				Quantity:    item.Quantity,
			})
			order.TotalCents += item.Product.PriceCents * int64(item.Quantity)

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// A concurrent checkout took the stock between the read and
				// the guarded update.
				return fmt.Errorf("%q: %w", item.Product.Name, ErrOutOfStock)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_uid = ?", buyerUID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormOrderRepository) GetOrderByNumber(number string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Where("number = ?", number).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) GetOrdersByBuyer(buyerUID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("buyer_uid = ?", buyerUID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrdersForDesigner returns orders containing at least one of the
// designer's products, for the owner's orders page.
func (r *GormOrderRepository) GetOrdersForDesigner(designerUID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("id IN (?)",
			r.db.Table("order_items").Select("order_id").Where("designer_uid = ?", designerUID),
		).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) UpdateStatus(number, status string) error {
	res := r.db.Model(&models.Order{}).Where("number = ?", number).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
