package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cherryshop/cherryshop-api/app/db/testdb"
	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type catalog struct {
	brands     *BrandService
	categories *CategoryService
	products   *ProductService
	images     *ImageService
}

func newCatalog(t *testing.T) catalog {
	t.Helper()
	db := testdb.Open(t)
	v := helpers.NewValidator()
	log := zap.NewNop()

	brandRepo := repositories.NewBrandRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	imageRepo := repositories.NewImageRepository(db)

	return catalog{
		brands:     NewBrandService(brandRepo, v, log),
		categories: NewCategoryService(categoryRepo, v, log),
		products:   NewProductService(productRepo, brandRepo, categoryRepo, v, log),
		images:     NewImageService(imageRepo, productRepo, v, log),
	}
}

func idPtr(v uint) *uint { return &v }

func TestCatalogNikeScenario(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	brand := &models.Brand{Name: "Nike"}
	require.NoError(t, c.brands.Create(ctx, brand))
	assert.Greater(t, brand.ID, uint(0))

	created, err := c.brands.Get(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nike", created.Name)
	assert.Empty(t, created.Products)

	product := &models.Product{Name: "Air", Price: decimal.RequireFromString("49.99"), BrandID: idPtr(brand.ID)}
	require.NoError(t, c.products.Create(ctx, product))

	got, err := c.products.Get(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Brand)
	assert.Equal(t, "Nike", got.Brand.Name)

	_, err = c.brands.Get(ctx, 999999)
	assert.ErrorIs(t, err, helpers.ErrNotFound)
}

func TestCreateRejectsMissingName(t *testing.T) {
	c := newCatalog(t)

	err := c.brands.Create(context.Background(), &models.Brand{})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	var verr *helpers.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
}

func TestCreateRejectsBlankNames(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	err := c.brands.Create(ctx, &models.Brand{Name: "   "})
	assert.ErrorIs(t, err, helpers.ErrValidation)
	err = c.categories.Create(ctx, &models.Category{Name: "\t\n"})
	assert.ErrorIs(t, err, helpers.ErrValidation)
	err = c.products.Create(ctx, &models.Product{Name: " ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	brands, err := c.brands.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)
}

func TestCreateRejectsCallerSuppliedID(t *testing.T) {
	c := newCatalog(t)
	err := c.categories.Create(context.Background(), &models.Category{ID: 7, Name: "Shoes"})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	list, err := c.categories.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductWithUnknownReferencesIsNotWritten(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	err := c.products.Create(ctx, &models.Product{Name: "Air", Price: decimal.NewFromInt(10), BrandID: idPtr(404)})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	err = c.products.Create(ctx, &models.Product{Name: "Air", Price: decimal.NewFromInt(10), CategoryID: idPtr(404)})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	list, err := c.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductValueRanges(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	err := c.products.Create(ctx, &models.Product{Name: "Air", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	err = c.products.Create(ctx, &models.Product{Name: "Air", Price: decimal.NewFromInt(1), DiscountPercent: decimal.NewFromInt(101)})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	err = c.products.Create(ctx, &models.Product{Name: "Air", Price: decimal.NewFromInt(1), Description: string(long)})
	assert.ErrorIs(t, err, helpers.ErrValidation)
}

func TestProductMoneyScaleAndSize(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	rejected := []*models.Product{
		{Name: "Air", Price: decimal.RequireFromString("49.999")},
		{Name: "Air", Price: decimal.RequireFromString("10000000000000")},
		{Name: "Air", Price: decimal.RequireFromString("99999999999999.99")},
		{Name: "Air", Price: decimal.NewFromInt(1), DiscountPercent: decimal.RequireFromString("12.345")},
	}
	for _, p := range rejected {
		err := c.products.Create(ctx, p)
		assert.ErrorIs(t, err, helpers.ErrValidation, p.Price.String())
	}

	list, err := c.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, price := range []string{"9999999999999.99", "49.99", "0.01", "49.990"} {
		p := &models.Product{Name: "Air", Price: decimal.RequireFromString(price), DiscountPercent: decimal.RequireFromString("12.5")}
		require.NoError(t, c.products.Create(ctx, p), price)

		got, err := c.products.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(got.Price), "in=%s out=%s", p.Price, got.Price)
		assert.True(t, p.DiscountPercent.Equal(got.DiscountPercent), "in=%s out=%s", p.DiscountPercent, got.DiscountPercent)
	}
}

func TestImageRequiresLiveProduct(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	err := c.images.Create(ctx, &models.Image{Title: "front", File: "front.jpg", ProductID: idPtr(12)})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	product := &models.Product{Name: "Air", Price: decimal.NewFromInt(1)}
	require.NoError(t, c.products.Create(ctx, product))
	image := &models.Image{Title: "front", File: "front.jpg", ProductID: idPtr(product.ID)}
	require.NoError(t, c.images.Create(ctx, image))

	got, err := c.images.Get(ctx, image.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Product)
	assert.Equal(t, "Air", got.Product.Name)
}

func TestUpdateMissingTargetIsNotFound(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	err := c.brands.Update(ctx, 5, &models.Brand{ID: 5, Name: "Puma"})
	assert.ErrorIs(t, err, helpers.ErrNotFound)

	list, err := c.brands.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateIDMismatchIsValidationFailure(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	brand := &models.Brand{Name: "Nike"}
	require.NoError(t, c.brands.Create(ctx, brand))

	err := c.brands.Update(ctx, brand.ID, &models.Brand{ID: brand.ID + 1, Name: "Puma"})
	assert.ErrorIs(t, err, helpers.ErrValidation)

	got, err := c.brands.Get(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nike", got.Name)
}

func TestUpdateReplacesEntity(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	brand := &models.Brand{Name: "Nike"}
	require.NoError(t, c.brands.Create(ctx, brand))
	require.NoError(t, c.brands.Update(ctx, brand.ID, &models.Brand{ID: brand.ID, Name: "Nike Inc"}))

	got, err := c.brands.Get(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nike Inc", got.Name)
}

func TestDeleteBrandWithProductsIsRejected(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	brand := &models.Brand{Name: "Nike"}
	require.NoError(t, c.brands.Create(ctx, brand))
	product := &models.Product{Name: "Air", Price: decimal.NewFromInt(1), BrandID: idPtr(brand.ID)}
	require.NoError(t, c.products.Create(ctx, product))

	assert.ErrorIs(t, c.brands.Delete(ctx, brand.ID), helpers.ErrValidation)

	require.NoError(t, c.products.Delete(ctx, product.ID))
	require.NoError(t, c.brands.Delete(ctx, brand.ID))

	_, err := c.brands.Get(ctx, brand.ID)
	assert.ErrorIs(t, err, helpers.ErrNotFound)
}

func TestDeleteCategoryAndProductGuards(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	category := &models.Category{Name: "Shoes"}
	require.NoError(t, c.categories.Create(ctx, category))
	product := &models.Product{Name: "Air", Price: decimal.NewFromInt(1), CategoryID: idPtr(category.ID)}
	require.NoError(t, c.products.Create(ctx, product))
	require.NoError(t, c.images.Create(ctx, &models.Image{Title: "a", File: "a.jpg", ProductID: idPtr(product.ID)}))

	assert.ErrorIs(t, c.categories.Delete(ctx, category.ID), helpers.ErrValidation)
	assert.ErrorIs(t, c.products.Delete(ctx, product.ID), helpers.ErrValidation)
}

func TestDeleteBadAndMissingIDs(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	assert.ErrorIs(t, c.images.Delete(ctx, 0), helpers.ErrValidation)
	assert.ErrorIs(t, c.images.Delete(ctx, 31), helpers.ErrNotFound)
}

type failingStore struct {
	repositories.EntityStore[models.Brand]
}

func (failingStore) IsExists(context.Context, uint) (bool, error) {
	return false, errors.New("connection reset by peer")
}

func (failingStore) GetAll(context.Context) ([]models.Brand, error) {
	return nil, errors.New("connection reset by peer")
}

func TestStorageErrorsAreHidden(t *testing.T) {
	svc := NewCatalogService[models.Brand]("Brand", failingStore{}, CatalogRules[models.Brand]{}, helpers.NewValidator(), zap.NewNop())

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, helpers.ErrPersistence)
	assert.NotContains(t, err.Error(), "connection reset")

	_, err = svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, helpers.ErrPersistence)
}
