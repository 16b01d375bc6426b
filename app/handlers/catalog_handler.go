package handlers

import (
	"net/http"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// CatalogHandler serves the five CRUD routes of one catalog resource. R is
// the request body the resource accepts on create and update.
type CatalogHandler[T models.Entity, R any] struct {
	name       string
	service    *services.CatalogService[T]
	render     *render.Render
	validate   *validator.Validate
	logger     *zap.Logger
	toModel    func(*R) *T
	toResponse func(*T) any
}

func newCatalogHandler[T models.Entity, R any](
	name string,
	service *services.CatalogService[T],
	rnd *render.Render,
	validate *validator.Validate,
	logger *zap.Logger,
	toModel func(*R) *T,
	toResponse func(*T) any,
) *CatalogHandler[T, R] {
	return &CatalogHandler[T, R]{
		name:       name,
		service:    service,
		render:     rnd,
		validate:   validate,
		logger:     logger,
		toModel:    toModel,
		toResponse: toResponse,
	}
}

func NewBrandHandler(svc *services.BrandService, rnd *render.Render, v *validator.Validate, logger *zap.Logger) *CatalogHandler[models.Brand, BrandRequest] {
	return newCatalogHandler("BrandController", svc, rnd, v, logger, (*BrandRequest).toModel,
		func(b *models.Brand) any { return NewBrandResponse(b) })
}

func NewCategoryHandler(svc *services.CategoryService, rnd *render.Render, v *validator.Validate, logger *zap.Logger) *CatalogHandler[models.Category, CategoryRequest] {
	return newCatalogHandler("CategoryController", svc, rnd, v, logger, (*CategoryRequest).toModel,
		func(c *models.Category) any { return NewCategoryResponse(c) })
}

func NewProductHandler(svc *services.ProductService, rnd *render.Render, v *validator.Validate, logger *zap.Logger) *CatalogHandler[models.Product, ProductRequest] {
	return newCatalogHandler("ProductController", svc, rnd, v, logger, (*ProductRequest).toModel,
		func(p *models.Product) any { return NewProductResponse(p) })
}

func NewImageHandler(svc *services.ImageService, rnd *render.Render, v *validator.Validate, logger *zap.Logger) *CatalogHandler[models.Image, ImageRequest] {
	return newCatalogHandler("ImageController", svc, rnd, v, logger, (*ImageRequest).toModel,
		func(i *models.Image) any { return NewImageResponse(i) })
}

func (h *CatalogHandler[T, R]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, h.toResponse(&items[i]))
	}
	h.render.JSON(w, http.StatusOK, out)
}

func (h *CatalogHandler[T, R]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(h.render, w, helpers.ErrNotFound)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, h.toResponse(item))
}

func (h *CatalogHandler[T, R]) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.bind(r)
	if err != nil {
		h.logger.Info(helpers.Location(h.name, "Create")+": rejected payload", zap.Error(err))
		writeError(h.render, w, err)
		return
	}

	entity := h.toModel(req)
	if err := h.service.Create(r.Context(), entity); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, h.toResponse(entity))
}

func (h *CatalogHandler[T, R]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	req, err := h.bind(r)
	if err != nil {
		h.logger.Info(helpers.Location(h.name, "Update")+": rejected payload", zap.Uint("id", id), zap.Error(err))
		writeError(h.render, w, err)
		return
	}

	if err := h.service.Update(r.Context(), id, h.toModel(req)); err != nil {
		writeError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler[T, R]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler[T, R]) bind(r *http.Request) (*R, error) {
	req := new(R)
	if err := decodeJSON(r, req); err != nil {
		return nil, err
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, helpers.ToValidationError(err)
	}
	return req, nil
}
