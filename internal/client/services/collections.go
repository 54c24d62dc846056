package services

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type collectionsAPI interface {
	CreateCollection(ctx context.Context, up models.CollectionUpload) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id string, up models.CollectionUpload) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id string) error
	Collection(ctx context.Context, id string) (*models.Collection, error)
	Collections(ctx context.Context, mine bool, page, limit int) ([]models.Collection, *models.Pagination, error)
	AddCollectionItems(ctx context.Context, id string, items []models.CollectionItemInput) error
	RemoveCollectionItem(ctx context.Context, id, itemID, kind string) error
	ReorderCollectionItems(ctx context.Context, id, kind string, order []string) error
}

// CollectionsService manages curated groupings of documents and lectures.
type CollectionsService interface {
	Create(ctx context.Context, up models.CollectionUpload) (*models.Collection, error)
	Update(ctx context.Context, id string, up models.CollectionUpload) (*models.Collection, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Collection, error)
	List(ctx context.Context, mine bool, page, limit int) ([]models.Collection, *models.Pagination, error)
	AddItems(ctx context.Context, id string, items []models.CollectionItemInput) error
	RemoveItem(ctx context.Context, id, itemID, kind string) error
	Reorder(ctx context.Context, id, kind string, order []string) error
}

type collectionsService struct {
	api   collectionsAPI
	cache *cache.Cache
}

func NewCollectionsService(api collectionsAPI, c *cache.Cache) CollectionsService {
	return &collectionsService{api: api, cache: c}
}

func (s *collectionsService) Create(ctx context.Context, up models.CollectionUpload) (*models.Collection, error) {
	col, err := s.api.CreateCollection(ctx, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("collections")
	return col, nil
}

func (s *collectionsService) Update(ctx context.Context, id string, up models.CollectionUpload) (*models.Collection, error) {
	col, err := s.api.UpdateCollection(ctx, id, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("collections")
	return col, nil
}

func (s *collectionsService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteCollection(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate("collections", "saved")
	return nil
}

func (s *collectionsService) Get(ctx context.Context, id string) (*models.Collection, error) {
	key := "collections/id/" + id
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.(*models.Collection), nil
	}
	col, err := s.api.Collection(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, col)
	return col, nil
}

type collectionPage struct {
	collections []models.Collection
	pagination  *models.Pagination
}

func (s *collectionsService) List(ctx context.Context, mine bool, page, limit int) ([]models.Collection, *models.Pagination, error) {
	key := fmt.Sprintf("collections/list/%t/%d/%d", mine, page, limit)
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		p := v.(collectionPage)
		return p.collections, p.pagination, nil
	}
	cols, pg, err := s.api.Collections(ctx, mine, page, limit)
	if err != nil {
		return nil, nil, err
	}
	s.cache.Set(key, collectionPage{collections: cols, pagination: pg})
	return cols, pg, nil
}

// Item mutations drop only the cached detail of the touched collection;
// listings keep their entry until the TTL or a collection-level change.
func (s *collectionsService) AddItems(ctx context.Context, id string, items []models.CollectionItemInput) error {
	if err := s.api.AddCollectionItems(ctx, id, items); err != nil {
		return err
	}
	s.cache.Invalidate("collections/id/" + id)
	return nil
}

func (s *collectionsService) RemoveItem(ctx context.Context, id, itemID, kind string) error {
	if err := s.api.RemoveCollectionItem(ctx, id, itemID, kind); err != nil {
		return err
	}
	s.cache.Invalidate("collections/id/" + id)
	return nil
}

func (s *collectionsService) Reorder(ctx context.Context, id, kind string, order []string) error {
	if err := s.api.ReorderCollectionItems(ctx, id, kind, order); err != nil {
		return err
	}
	s.cache.Invalidate("collections/id/" + id)
	return nil
}
