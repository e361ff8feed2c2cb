package model

import "github.com/google/uuid"

const ProductStatusActive = "Active"

type Product struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`

	// Weak reference: deleting a category leaves products pointing at a
	// missing row rather than cascading.
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`

	BuyingPrice  float64 `gorm:"not null" json:"buying_price" validate:"gte=0"`
	SellingPrice float64 `gorm:"not null" json:"selling_price" validate:"gte=0"`
	Quantity     int     `gorm:"default:0" json:"quantity" validate:"gte=0"`
	MinStock     int     `gorm:"default:5" json:"min_stock"`
	Status       string  `gorm:"type:varchar(20);default:'Active'" json:"status"`
	Description  string  `gorm:"type:text" json:"description"`

	// Image holds the served path of the uploaded product image, empty when
	// none was uploaded.
	Image string `gorm:"type:varchar(255)" json:"image"`
}

// LowStock reports whether the product sits at or below its restock threshold.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
