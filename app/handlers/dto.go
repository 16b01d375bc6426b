package handlers

import (
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/utils/calc"
	"github.com/cherryshop/cherryshop-api/app/utils/format"
	"github.com/shopspring/decimal"
)

type BrandRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type CategoryRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type ProductRequest struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name" validate:"required,notblank,max=255"`
	Description     string           `json:"description" validate:"max=500"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	CategoryID      *uint            `json:"categoryId"`
	BrandID         *uint            `json:"brandId"`
}

type ImageRequest struct {
	ID        uint   `json:"id"`
	Title     string `json:"title" validate:"required,notblank,max=255"`
	File      string `json:"file" validate:"required,notblank,max=1024"`
	ProductID *uint  `json:"productId"`
}

type RegisterRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Username     string `json:"username" validate:"required,notblank"`
	Password     string `json:"password" validate:"required,min=8,max=15"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type BrandSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductSummary struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
	PriceDisplay    string          `json:"priceDisplay"`
	CategoryID      *uint           `json:"categoryId"`
	BrandID         *uint           `json:"brandId"`
}

type ImageSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	File      string `json:"file"`
	ProductID *uint  `json:"productId"`
}

type BrandResponse struct {
	BrandSummary
	Products []ProductSummary `json:"products"`
}

type CategoryResponse struct {
	CategorySummary
	Products []ProductSummary `json:"products"`
}

type ProductResponse struct {
	ProductSummary
	Brand    *BrandSummary    `json:"brand"`
	Category *CategorySummary `json:"category"`
	Images   []ImageSummary   `json:"images"`
}

type ImageProduct struct {
	ProductSummary
	Brand    *BrandSummary    `json:"brand"`
	Category *CategorySummary `json:"category"`
}

type ImageResponse struct {
	ImageSummary
	Product *ImageProduct `json:"product"`
}

func (req *BrandRequest) toModel() *models.Brand {
	return &models.Brand{ID: req.ID, Name: req.Name}
}

func (req *CategoryRequest) toModel() *models.Category {
	return &models.Category{ID: req.ID, Name: req.Name}
}

func (req *ProductRequest) toModel() *models.Product {
	p := &models.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.DiscountPercent != nil {
		p.DiscountPercent = *req.DiscountPercent
	}
	return p
}

func (req *ImageRequest) toModel() *models.Image {
	return &models.Image{ID: req.ID, Title: req.Title, File: req.File, ProductID: req.ProductID}
}

func productSummary(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		FinalPrice:      calc.ApplyDiscount(p.Price, p.DiscountPercent),
		PriceDisplay:    format.Price(p.Price),
		CategoryID:      p.CategoryID,
		BrandID:         p.BrandID,
	}
}

func productSummaries(products []models.Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for i := range products {
		out = append(out, productSummary(&products[i]))
	}
	return out
}

func brandSummary(b *models.Brand) *BrandSummary {
	if b == nil {
		return nil
	}
	return &BrandSummary{ID: b.ID, Name: b.Name}
}

func categorySummary(c *models.Category) *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{ID: c.ID, Name: c.Name}
}

func imageSummary(i *models.Image) ImageSummary {
	return ImageSummary{ID: i.ID, Title: i.Title, File: i.File, ProductID: i.ProductID}
}

func NewBrandResponse(b *models.Brand) BrandResponse {
	return BrandResponse{BrandSummary: *brandSummary(b), Products: productSummaries(b.Products)}
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{CategorySummary: *categorySummary(c), Products: productSummaries(c.Products)}
}

func NewProductResponse(p *models.Product) ProductResponse {
	images := make([]ImageSummary, 0, len(p.Images))
	for i := range p.Images {
		images = append(images, imageSummary(&p.Images[i]))
	}
	return ProductResponse{
		ProductSummary: productSummary(p),
		Brand:          brandSummary(p.Brand),
		Category:       categorySummary(p.Category),
		Images:         images,
	}
}

func NewImageResponse(i *models.Image) ImageResponse {
	resp := ImageResponse{ImageSummary: imageSummary(i)}
	if i.Product != nil {
		resp.Product = &ImageProduct{
			ProductSummary: productSummary(i.Product),
			Brand:          brandSummary(i.Product.Brand),
			Category:       categorySummary(i.Product.Category),
		}
	}
	return resp
}
