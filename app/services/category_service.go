package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/cache"
)

type CategoryService struct {
	categories repositories.CategoryRepository
	integrity  *Integrity
	reports    *cache.Store
}

func NewCategoryService(categories repositories.CategoryRepository, integrity *Integrity, reports *cache.Store) *CategoryService {
	return &CategoryService{categories: categories, integrity: integrity, reports: reports}
}

func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	if err := invalid(in.Validate()); err != nil {
		return models.Category{}, err
	}

	c, err := s.categories.Create(ctx, models.Category{ID: uuid.NewString(), Name: in.Name})
	if err != nil {
		return models.Category{}, err
	}
	invalidateReports(ctx, s.reports)
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	if c == nil {
		return models.Category{}, notFound("Category", id)
	}
	return *c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.NonNil(all), nil
}

func (s *CategoryService) Update(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	if err := invalid(patch.Validate()); err != nil {
		return models.Category{}, err
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	patch.Apply(&c)

	updated, err := s.categories.Update(ctx, c)
	if err != nil {
		return models.Category{}, err
	}
	invalidateReports(ctx, s.reports)
	return updated, nil
}

// Delete removes the category and strips it from every product. Reports are
// invalidated even on failure since the product cascade may already be
// written.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	defer invalidateReports(ctx, s.reports)
	return s.integrity.DeleteCategory(ctx, id)
}
