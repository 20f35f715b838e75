package service

import (
	"context"
	"errors"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/listing"
	"github.com/beout/beout-admin/pkg/logger"
	"go.uber.org/zap"
)

// categoryService implements CategoryService
type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// List searches categories by any localized name or description
func (s *categoryService) List(ctx context.Context, query *dto.ListCategoriesQuery) (listing.Page[*domain.Category], error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return listing.Page[*domain.Category]{}, err
	}

	q := listing.Query{Search: query.Search, Page: query.Page, Limit: query.Limit}
	return listing.Apply(categories, q, func(c *domain.Category, term string) bool {
		return listing.ContainsFold(term,
			c.Name, c.NameFr, c.NameEn, c.NameEs,
			c.Description, c.DescriptionFr, c.DescriptionEn, c.DescriptionEs)
	}), nil
}

// Get retrieves a category by ID
func (s *categoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create creates a category
func (s *categoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*domain.Category, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}

	category := req.ToCategory()
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "category created", zap.String("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// Update replaces a category's labels, icon and color
func (s *categoryService) Update(ctx context.Context, id string, req *dto.CategoryRequest) (*domain.Category, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}

	existing, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCategoryNotFound
	}

	category := req.ToCategory()
	category.ID = id
	category.CreatedAt = existing.CreatedAt
	category.EventCount = existing.EventCount

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	if !updated {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Delete removes a category no event uses
func (s *categoryService) Delete(ctx context.Context, id string) error {
	count, err := s.categoryRepo.CountEvents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrCategoryInUse
		}
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	logger.InfoCtx(ctx, "category deleted", zap.String("category_id", id))
	return nil
}
