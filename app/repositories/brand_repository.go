package repositories

import (
	"context"

	"github.com/cherryshop/cherryshop-api/app/models"
	"gorm.io/gorm"
)

type BrandRepositoryImpl interface {
	EntityStore[models.Brand]
	CountProducts(ctx context.Context, brandID uint) (int64, error)
}

type brandRepository struct {
	*entityStore[models.Brand]
}

func NewBrandRepository(db *gorm.DB) BrandRepositoryImpl {
	return &brandRepository{newEntityStore[models.Brand](db)}
}

func (r *brandRepository) CountProducts(ctx context.Context, brandID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}
