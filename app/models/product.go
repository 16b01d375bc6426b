package models

import (
	"github.com/shopspring/decimal"
)

// Product owns the foreign keys to its brand and category. Brand.Products,
// Category.Products and Product.Images are only ever filled on read.
type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	Name            string          `gorm:"size:255;not null" validate:"required,notblank,max=255"`
	Description     string          `gorm:"size:500" validate:"max=500"`
	Price           decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.00"`
	CategoryID      *uint           `gorm:"index"`
	BrandID         *uint           `gorm:"index"`
	Category        *Category       `gorm:"foreignKey:CategoryID" validate:"-"`
	Brand           *Brand          `gorm:"foreignKey:BrandID" validate:"-"`
	Images          []Image         `gorm:"foreignKey:ProductID" validate:"-"`
}

func (p Product) GetID() uint { return p.ID }

func (Product) TableName() string { return "products" }
