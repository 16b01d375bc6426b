package repositories

import (
	"github.com/cherryshop/cherryshop-api/app/models"
	"gorm.io/gorm"
)

type ImageRepositoryImpl interface {
	EntityStore[models.Image]
}

type imageRepository struct {
	*entityStore[models.Image]
}

func NewImageRepository(db *gorm.DB) ImageRepositoryImpl {
	return &imageRepository{newEntityStore[models.Image](db)}
}
