package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// ProductFilter narrows storefront listings. Zero values mean "no filter".
type ProductFilter struct {
	Category    string
	DesignerUID string
	ThriftOnly  bool
	Offset      int
	Limit       int
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id uint) (*models.Product, error)
	GetProducts(filter ProductFilter) ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint, designerUID string) error
}

// GormProductRepository implements ProductRepository for the relational store
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) CreateProduct(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) GetProducts(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{}).Order("created_at DESC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.DesignerUID != "" {
		q = q.Where("designer_uid = ?", filter.DesignerUID)
	}
	if filter.ThriftOnly {
		q = q.Where("is_thrift = ?", true)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) UpdateProduct(product *models.Product) error {
	return r.db.Save(product).Error
}

// DeleteProduct removes a listing; the designer scope keeps one account
// from deleting another's products.
func (r *GormProductRepository) DeleteProduct(id uint, designerUID string) error {
	res := r.db.Where("id = ? AND designer_uid = ?", id, designerUID).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}
