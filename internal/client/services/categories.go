package services

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type categoriesAPI interface {
	Categories(ctx context.Context, query models.ListQuery, includeInactive bool) ([]models.Category, error)
	Category(ctx context.Context, id string) (*models.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// CategoriesService exposes the read-only category taxonomy. Categories
// change rarely, so everything is cached.
type CategoriesService interface {
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type categoriesService struct {
	api   categoriesAPI
	cache *cache.Cache
}

func NewCategoriesService(api categoriesAPI, c *cache.Cache) CategoriesService {
	return &categoriesService{api: api, cache: c}
}

func (s *categoriesService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	key := fmt.Sprintf("categories/list/%t", includeInactive)
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Category), nil
	}
	cats, err := s.api.Categories(ctx, models.ListQuery{}, includeInactive)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, cats)
	return cats, nil
}

func (s *categoriesService) Get(ctx context.Context, id string) (*models.Category, error) {
	key := "categories/" + id
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.(*models.Category), nil
	}
	cat, err := s.api.Category(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, cat)
	return cat, nil
}

func (s *categoriesService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	key := "categories/slug/" + slug
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.(*models.Category), nil
	}
	cat, err := s.api.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, cat)
	return cat, nil
}
