package models

import "time"

// Product is a storefront listing owned by a designer account.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DesignerUID string    `json:"designer_uid" gorm:"type:varchar(64);not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	Sizes       []string  `json:"sizes" gorm:"serializer:json"`
	ImageURLs   []string  `json:"image_urls" gorm:"serializer:json"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	IsThrift    bool      `json:"is_thrift" gorm:"index"` // second-hand listings surface on the thrift page
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	PriceCents  int64    `json:"price_cents" validate:"required,min=1"`
	Category    string   `json:"category" validate:"omitempty,max=60"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,max=10"`
	ImageURLs   []string `json:"image_urls" validate:"omitempty,dive,url"`
	Stock       int      `json:"stock" validate:"min=0"`
	IsThrift    bool     `json:"is_thrift"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	PriceCents  int64    `json:"price_cents,omitempty" validate:"omitempty,min=1"`
	Category    string   `json:"category,omitempty" validate:"omitempty,max=60"`
	Sizes       []string `json:"sizes,omitempty" validate:"omitempty,dive,max=10"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
}
