package services

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

// documentsAPI is the slice of the backend client the documents service
// needs.
type documentsAPI interface {
	CreateDocument(ctx context.Context, up models.DocumentUpload) (*models.Document, error)
	UpdateDocument(ctx context.Context, id string, up models.DocumentUpload) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	Document(ctx context.Context, id string) (*models.Document, error)
	UserDocuments(ctx context.Context) ([]models.Document, error)
	PublicDocuments(ctx context.Context, page, limit int) ([]models.Document, *models.Pagination, error)
	DownloadDocument(ctx context.Context, id string) ([]byte, error)
}

// DocumentsService manages study documents: uploads, edits, listings, and
// raw downloads.
type DocumentsService interface {
	Upload(ctx context.Context, up models.DocumentUpload) (*models.Document, error)
	Update(ctx context.Context, id string, up models.DocumentUpload) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Document, error)
	Mine(ctx context.Context) ([]models.Document, error)
	Public(ctx context.Context, page, limit int) ([]models.Document, *models.Pagination, error)
	Download(ctx context.Context, id string) ([]byte, error)
}

type documentsService struct {
	api   documentsAPI
	cache *cache.Cache
}

func NewDocumentsService(api documentsAPI, c *cache.Cache) DocumentsService {
	return &documentsService{api: api, cache: c}
}

func (s *documentsService) Upload(ctx context.Context, up models.DocumentUpload) (*models.Document, error) {
	doc, err := s.api.CreateDocument(ctx, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("documents")
	return doc, nil
}

func (s *documentsService) Update(ctx context.Context, id string, up models.DocumentUpload) (*models.Document, error) {
	doc, err := s.api.UpdateDocument(ctx, id, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("documents")
	return doc, nil
}

func (s *documentsService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteDocument(ctx, id); err != nil {
		return err
	}
	// A deleted document also disappears from saved lists and shares.
	s.cache.Invalidate("documents", "saved", "shares")
	return nil
}

func (s *documentsService) Get(ctx context.Context, id string) (*models.Document, error) {
	key := "documents/id/" + id
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.(*models.Document), nil
	}
	doc, err := s.api.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, doc)
	return doc, nil
}

func (s *documentsService) Mine(ctx context.Context) ([]models.Document, error) {
	key := "documents/mine"
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Document), nil
	}
	docs, err := s.api.UserDocuments(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, docs)
	return docs, nil
}

type documentPage struct {
	docs       []models.Document
	pagination *models.Pagination
}

func (s *documentsService) Public(ctx context.Context, page, limit int) ([]models.Document, *models.Pagination, error) {
	key := fmt.Sprintf("documents/public/%d/%d", page, limit)
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		p := v.(documentPage)
		return p.docs, p.pagination, nil
	}
	docs, pg, err := s.api.PublicDocuments(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}
	s.cache.Set(key, documentPage{docs: docs, pagination: pg})
	return docs, pg, nil
}

// Download fetches the document's raw bytes. Never cached: files can be
// large, and the caller usually writes them straight to disk.
func (s *documentsService) Download(ctx context.Context, id string) ([]byte, error) {
	return s.api.DownloadDocument(ctx, id)
}
