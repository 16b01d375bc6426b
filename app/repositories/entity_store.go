package repositories

import (
	"context"
	"errors"
	"sync"

	"github.com/cherryshop/cherryshop-api/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityStore is the persistence contract shared by every catalog type.
// Create, Update and Delete each stage one change and Save it immediately.
type EntityStore[T models.Entity] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	IsExists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, entity *T) (bool, error)
	Update(ctx context.Context, entity *T) (bool, error)
	Delete(ctx context.Context, entity *T) (bool, error)
	Save(ctx context.Context) (bool, error)
}

// ErrMissingID is returned when Update or Delete get an entity without id.
var ErrMissingID = errors.New("entity has no id")

type stagedChange func(tx *gorm.DB) (int64, error)

type entityStore[T models.Entity] struct {
	db       *gorm.DB
	preloads []string

	mu      sync.Mutex
	pending []stagedChange
}

func newEntityStore[T models.Entity](db *gorm.DB) *entityStore[T] {
	return &entityStore[T]{
		db:       db,
		preloads: Relations[T](),
	}
}

func (s *entityStore[T]) withRelations(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, path := range s.preloads {
		q = q.Preload(path)
	}
	return q
}

func (s *entityStore[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.withRelations(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *entityStore[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var item T
	err := s.withRelations(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *entityStore[T]) IsExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *entityStore[T]) Create(ctx context.Context, entity *T) (bool, error) {
	return s.stageAndSave(ctx, func(tx *gorm.DB) (int64, error) {
		res := tx.Omit(clause.Associations).Create(entity)
		return res.RowsAffected, res.Error
	})
}

func (s *entityStore[T]) Update(ctx context.Context, entity *T) (bool, error) {
	if (*entity).GetID() == 0 {
		return false, ErrMissingID
	}
	return s.stageAndSave(ctx, func(tx *gorm.DB) (int64, error) {
		res := tx.Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
		return res.RowsAffected, res.Error
	})
}

func (s *entityStore[T]) Delete(ctx context.Context, entity *T) (bool, error) {
	if (*entity).GetID() == 0 {
		return false, ErrMissingID
	}
	return s.stageAndSave(ctx, func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(new(T), (*entity).GetID())
		return res.RowsAffected, res.Error
	})
}

func (s *entityStore[T]) Save(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *entityStore[T]) stageAndSave(ctx context.Context, change stagedChange) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, change)
	return s.saveLocked(ctx)
}

// saveLocked commits the pending unit of work in one transaction. The
// pending list is always cleared, a failed unit of work is not replayed.
func (s *entityStore[T]) saveLocked(ctx context.Context) (bool, error) {
	changes := s.pending
	s.pending = nil
	if len(changes) == 0 {
		return false, nil
	}

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			n, err := change(tx)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
