package service

import (
	"context"

	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
)

// ProductService manages menu products.
type ProductService struct {
	products repository.ProductRepository
	cache    *MenuCache
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, cache *MenuCache) *ProductService {
	return &ProductService{products: products, cache: cache}
}

// Create adds a product linked to the given category slugs.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyProducts)
	return nil
}

// List returns all products, served from cache when possible.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if s.cache.Get(ctx, cacheKeyProducts, &cached) {
		return cached, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKeyProducts, products)
	return products, nil
}

// Get returns one product by slug.
func (s *ProductService) Get(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

// Update overwrites product fields and category links.
func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyProducts)
	return nil
}

// ToggleActive flips the product's active flag and returns the new value.
func (s *ProductService) ToggleActive(ctx context.Context, slug string) (bool, error) {
	active, err := s.products.ToggleActive(ctx, slug)
	if err != nil {
		return false, err
	}
	s.cache.Invalidate(ctx, cacheKeyProducts)
	return active, nil
}

// Delete removes the product.
func (s *ProductService) Delete(ctx context.Context, slug string) error {
	if err := s.products.Delete(ctx, slug); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyProducts)
	return nil
}
