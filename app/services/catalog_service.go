package services

import (
	"context"
	"errors"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CatalogRules holds the per-type checks a CatalogService runs before it
// writes. Both hooks are optional.
type CatalogRules[T models.Entity] struct {
	// Check runs on create and update after struct validation.
	Check func(ctx context.Context, entity *T) error
	// BeforeDelete runs once the target is known to exist.
	BeforeDelete func(ctx context.Context, id uint) error
}

// CatalogService is the client-facing operation set for one catalog type.
// It returns helpers.ErrNotFound, a *helpers.ValidationError, or the generic
// helpers.ErrPersistence; storage errors are logged, never returned.
type CatalogService[T models.Entity] struct {
	name     string
	store    repositories.EntityStore[T]
	rules    CatalogRules[T]
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCatalogService[T models.Entity](name string, store repositories.EntityStore[T], rules CatalogRules[T], validate *validator.Validate, logger *zap.Logger) *CatalogService[T] {
	return &CatalogService[T]{
		name:     name,
		store:    store,
		rules:    rules,
		validate: validate,
		logger:   logger,
	}
}

func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	location := helpers.Location(s.name+"Service", "List")
	items, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.persistenceFailure(location, 0, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *CatalogService[T]) Get(ctx context.Context, id uint) (*T, error) {
	location := helpers.Location(s.name+"Service", "Get")
	exists, err := s.store.IsExists(ctx, id)
	if err != nil {
		return nil, s.persistenceFailure(location, id, err)
	}
	if !exists {
		s.logger.Warn(location+": "+s.name+" not found", zap.Uint("id", id))
		return nil, helpers.ErrNotFound
	}

	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.persistenceFailure(location, id, err)
	}
	if item == nil {
		// deleted between the two reads
		return nil, helpers.ErrNotFound
	}
	return item, nil
}

func (s *CatalogService[T]) Create(ctx context.Context, entity *T) error {
	location := helpers.Location(s.name+"Service", "Create")
	if entity == nil {
		return helpers.NewValidationError("body", s.name+" object is empty")
	}
	if (*entity).GetID() != 0 {
		return helpers.NewValidationError("id", "id is assigned by the store")
	}
	if err := s.check(ctx, location, entity); err != nil {
		return err
	}

	ok, err := s.store.Create(ctx, entity)
	if err != nil {
		return s.persistenceFailure(location, 0, err)
	}
	if !ok {
		return s.persistenceFailure(location, 0, errors.New("create affected no rows"))
	}
	s.logger.Info(location+": "+s.name+" created", zap.Uint("id", (*entity).GetID()))
	return nil
}

// Update replaces the row identified by id. The payload id must match.
func (s *CatalogService[T]) Update(ctx context.Context, id uint, entity *T) error {
	location := helpers.Location(s.name+"Service", "Update")
	if id < 1 || entity == nil || (*entity).GetID() != id {
		s.logger.Warn(location+": bad data", zap.Uint("id", id))
		return helpers.NewValidationError("id", "id is missing or does not match the target")
	}

	exists, err := s.store.IsExists(ctx, id)
	if err != nil {
		return s.persistenceFailure(location, id, err)
	}
	if !exists {
		s.logger.Warn(location+": "+s.name+" not found", zap.Uint("id", id))
		return helpers.ErrNotFound
	}
	if err := s.check(ctx, location, entity); err != nil {
		return err
	}

	ok, err := s.store.Update(ctx, entity)
	if err != nil {
		return s.persistenceFailure(location, id, err)
	}
	if !ok {
		return s.persistenceFailure(location, id, errors.New("update affected no rows"))
	}
	s.logger.Info(location+": "+s.name+" updated", zap.Uint("id", id))
	return nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id uint) error {
	location := helpers.Location(s.name+"Service", "Delete")
	if id < 1 {
		s.logger.Warn(location+": bad data", zap.Uint("id", id))
		return helpers.NewValidationError("id", "id must be positive")
	}

	exists, err := s.store.IsExists(ctx, id)
	if err != nil {
		return s.persistenceFailure(location, id, err)
	}
	if !exists {
		s.logger.Warn(location+": "+s.name+" not found", zap.Uint("id", id))
		return helpers.ErrNotFound
	}
	if s.rules.BeforeDelete != nil {
		if err := s.rules.BeforeDelete(ctx, id); err != nil {
			return s.classify(location, id, err)
		}
	}

	entity, err := s.store.GetByID(ctx, id)
	if err != nil {
		return s.persistenceFailure(location, id, err)
	}
	if entity == nil {
		return helpers.ErrNotFound
	}

	ok, err := s.store.Delete(ctx, entity)
	if err != nil {
		return s.persistenceFailure(location, id, err)
	}
	if !ok {
		return s.persistenceFailure(location, id, errors.New("delete affected no rows"))
	}
	s.logger.Info(location+": "+s.name+" deleted", zap.Uint("id", id))
	return nil
}

func (s *CatalogService[T]) check(ctx context.Context, location string, entity *T) error {
	if err := s.validate.Struct(entity); err != nil {
		s.logger.Warn(location+": "+s.name+" object is incomplete", zap.Error(err))
		return helpers.ToValidationError(err)
	}
	if s.rules.Check != nil {
		if err := s.rules.Check(ctx, entity); err != nil {
			return s.classify(location, (*entity).GetID(), err)
		}
	}
	return nil
}

// classify passes validation failures through and hides everything else.
func (s *CatalogService[T]) classify(location string, id uint, err error) error {
	if errors.Is(err, helpers.ErrValidation) {
		s.logger.Warn(location+": "+err.Error(), zap.Uint("id", id))
		return err
	}
	return s.persistenceFailure(location, id, err)
}

func (s *CatalogService[T]) persistenceFailure(location string, id uint, err error) error {
	s.logger.Error(location+": "+s.name+" operation failed",
		zap.String("entity", s.name),
		zap.Uint("id", id),
		zap.Error(err),
	)
	return helpers.ErrPersistence
}
