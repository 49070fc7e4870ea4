package service

import (
	"context"
	"errors"

	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
)

// CategoryService manages menu categories.
type CategoryService struct {
	categories repository.CategoryRepository
	cache      *MenuCache
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, cache *MenuCache) *CategoryService {
	return &CategoryService{categories: categories, cache: cache}
}

// Create adds a category; the slug must be unused.
func (s *CategoryService) Create(ctx context.Context, name, slug string, isActive bool) (*domain.Category, error) {
	if _, err := s.categories.GetBySlug(ctx, slug); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category := &domain.Category{Name: name, Slug: slug, IsActive: isActive}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyCategories)
	return category, nil
}

// List returns all categories, served from cache when possible.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var cached []domain.Category
	if s.cache.Get(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKeyCategories, categories)
	return categories, nil
}

// Get returns one category by slug.
func (s *CategoryService) Get(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}

// Update changes name and active flag for the category with the given slug.
func (s *CategoryService) Update(ctx context.Context, slug, name string, isActive bool) error {
	category := &domain.Category{Name: name, Slug: slug, IsActive: isActive}
	if err := s.categories.Update(ctx, category); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyCategories, cacheKeyProducts)
	return nil
}

// Delete removes the category.
func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	if err := s.categories.Delete(ctx, slug); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyCategories, cacheKeyProducts)
	return nil
}
