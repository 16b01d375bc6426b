package repositories

import (
	"context"

	"github.com/cherryshop/cherryshop-api/app/models"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	EntityStore[models.Category]
	CountProducts(ctx context.Context, categoryID uint) (int64, error)
}

type categoryRepository struct {
	*entityStore[models.Category]
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{newEntityStore[models.Category](db)}
}

func (r *categoryRepository) CountProducts(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
