package services

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type savedAPI interface {
	SaveItem(ctx context.Context, kind, ref string) error
	RemoveSavedItem(ctx context.Context, kind, ref string) error
	SavedItems(ctx context.Context, kind string, page, limit int) ([]models.SavedItem, *models.Pagination, error)
}

// SavedService manages the user's bookmarks across content kinds.
type SavedService interface {
	Save(ctx context.Context, kind, ref string) error
	Remove(ctx context.Context, kind, ref string) error
	List(ctx context.Context, kind string, page, limit int) ([]models.SavedItem, *models.Pagination, error)
}

type savedService struct {
	api   savedAPI
	cache *cache.Cache
}

func NewSavedService(api savedAPI, c *cache.Cache) SavedService {
	return &savedService{api: api, cache: c}
}

func (s *savedService) Save(ctx context.Context, kind, ref string) error {
	if err := s.api.SaveItem(ctx, kind, ref); err != nil {
		return err
	}
	s.cache.Invalidate("saved")
	return nil
}

func (s *savedService) Remove(ctx context.Context, kind, ref string) error {
	if err := s.api.RemoveSavedItem(ctx, kind, ref); err != nil {
		return err
	}
	s.cache.Invalidate("saved")
	return nil
}

type savedPage struct {
	items      []models.SavedItem
	pagination *models.Pagination
}

func (s *savedService) List(ctx context.Context, kind string, page, limit int) ([]models.SavedItem, *models.Pagination, error) {
	key := fmt.Sprintf("saved/%s/%d/%d", kind, page, limit)
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		p := v.(savedPage)
		return p.items, p.pagination, nil
	}
	items, pg, err := s.api.SavedItems(ctx, kind, page, limit)
	if err != nil {
		return nil, nil, err
	}
	s.cache.Set(key, savedPage{items: items, pagination: pg})
	return items, pg, nil
}
