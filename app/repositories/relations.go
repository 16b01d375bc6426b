package repositories

import (
	"github.com/cherryshop/cherryshop-api/app/models"
)

// Relations lists the eager-load paths for T. Paths only ever walk away
// from T, so an Image loads its Product's Brand and Category but never the
// Product's Images.
func Relations[T models.Entity]() []string {
	var zero T
	switch any(zero).(type) {
	case models.Brand:
		return []string{"Products"}
	case models.Category:
		return []string{"Products"}
	case models.Product:
		return []string{"Brand", "Category", "Images"}
	case models.Image:
		return []string{"Product.Brand", "Product.Category"}
	}
	return nil
}
