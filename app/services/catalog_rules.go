package services

import (
	"context"
	"fmt"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	maxDiscountPercent = decimal.NewFromInt(100)
	// prices stay below 10^13 so 2-place values also survive sqlite REAL storage
	priceLimit = decimal.New(1, 13)
)

const moneyPlaces = 2

func hasExtraPlaces(d decimal.Decimal) bool {
	return !d.Round(moneyPlaces).Equal(d)
}

type (
	BrandService    = CatalogService[models.Brand]
	CategoryService = CatalogService[models.Category]
	ProductService  = CatalogService[models.Product]
	ImageService    = CatalogService[models.Image]
)

func NewBrandService(brandRepo repositories.BrandRepositoryImpl, validate *validator.Validate, logger *zap.Logger) *BrandService {
	return NewCatalogService("Brand", repositories.EntityStore[models.Brand](brandRepo), CatalogRules[models.Brand]{
		BeforeDelete: func(ctx context.Context, id uint) error {
			n, err := brandRepo.CountProducts(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return helpers.NewValidationError("id", fmt.Sprintf("brand %d still has %d product(s)", id, n))
			}
			return nil
		},
	}, validate, logger)
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryImpl, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	return NewCatalogService("Category", repositories.EntityStore[models.Category](categoryRepo), CatalogRules[models.Category]{
		BeforeDelete: func(ctx context.Context, id uint) error {
			n, err := categoryRepo.CountProducts(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return helpers.NewValidationError("id", fmt.Sprintf("category %d still has %d product(s)", id, n))
			}
			return nil
		},
	}, validate, logger)
}

func NewProductService(productRepo repositories.ProductRepositoryImpl, brandRepo repositories.BrandRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, validate *validator.Validate, logger *zap.Logger) *ProductService {
	return NewCatalogService("Product", repositories.EntityStore[models.Product](productRepo), CatalogRules[models.Product]{
		Check: func(ctx context.Context, p *models.Product) error {
			if p.Price.IsNegative() {
				return helpers.NewValidationError("price", "price must not be negative")
			}
			if p.Price.GreaterThanOrEqual(priceLimit) {
				return helpers.NewValidationError("price", "price must be below 10000000000000")
			}
			if hasExtraPlaces(p.Price) {
				return helpers.NewValidationError("price", "price must have at most 2 decimal places")
			}
			if p.DiscountPercent.IsNegative() || p.DiscountPercent.GreaterThan(maxDiscountPercent) {
				return helpers.NewValidationError("discountPercent", "discount must be between 0 and 100")
			}
			if hasExtraPlaces(p.DiscountPercent) {
				return helpers.NewValidationError("discountPercent", "discount must have at most 2 decimal places")
			}
			if p.BrandID != nil {
				ok, err := brandRepo.IsExists(ctx, *p.BrandID)
				if err != nil {
					return err
				}
				if !ok {
					return helpers.NewValidationError("brandId", fmt.Sprintf("brand %d does not exist", *p.BrandID))
				}
			}
			if p.CategoryID != nil {
				ok, err := categoryRepo.IsExists(ctx, *p.CategoryID)
				if err != nil {
					return err
				}
				if !ok {
					return helpers.NewValidationError("categoryId", fmt.Sprintf("category %d does not exist", *p.CategoryID))
				}
			}
			return nil
		},
		BeforeDelete: func(ctx context.Context, id uint) error {
			n, err := productRepo.CountImages(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return helpers.NewValidationError("id", fmt.Sprintf("product %d still has %d image(s)", id, n))
			}
			return nil
		},
	}, validate, logger)
}

func NewImageService(imageRepo repositories.ImageRepositoryImpl, productRepo repositories.ProductRepositoryImpl, validate *validator.Validate, logger *zap.Logger) *ImageService {
	return NewCatalogService("Image", repositories.EntityStore[models.Image](imageRepo), CatalogRules[models.Image]{
		Check: func(ctx context.Context, img *models.Image) error {
			if img.ProductID == nil {
				return nil
			}
			ok, err := productRepo.IsExists(ctx, *img.ProductID)
			if err != nil {
				return err
			}
			if !ok {
				return helpers.NewValidationError("productId", fmt.Sprintf("product %d does not exist", *img.ProductID))
			}
			return nil
		},
	}, validate, logger)
}
