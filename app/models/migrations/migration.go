package migrations

import (
	"github.com/cherryshop/cherryshop-api/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{}, &models.Brand{}, &models.Category{}, &models.Product{}, &models.Image{})
}
