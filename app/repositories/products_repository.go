package repositories

import (
	"context"

	"github.com/cherryshop/cherryshop-api/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	EntityStore[models.Product]
	CountImages(ctx context.Context, productID uint) (int64, error)
}

type productRepository struct {
	*entityStore[models.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{newEntityStore[models.Product](db)}
}

func (p *productRepository) CountImages(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Image{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
