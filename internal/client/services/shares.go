package services

import (
	"context"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type sharesAPI interface {
	ShareDocument(ctx context.Context, documentID, userID string) error
	SharedDocuments(ctx context.Context) ([]models.Document, error)
	DocumentShares(ctx context.Context, documentID string) ([]models.Share, error)
	RevokeDocumentShare(ctx context.Context, shareID string) error
	ShareLecture(ctx context.Context, lectureID, userID string) error
	SharedLectures(ctx context.Context) ([]models.Lecture, error)
	LectureShares(ctx context.Context, lectureID string) ([]models.Share, error)
	RevokeLectureShare(ctx context.Context, shareID string) error
}

// SharesService manages per-user grants on private documents and lectures.
type SharesService interface {
	ShareDocument(ctx context.Context, documentID, userID string) error
	SharedDocuments(ctx context.Context) ([]models.Document, error)
	DocumentShares(ctx context.Context, documentID string) ([]models.Share, error)
	RevokeDocumentShare(ctx context.Context, shareID string) error
	ShareLecture(ctx context.Context, lectureID, userID string) error
	SharedLectures(ctx context.Context) ([]models.Lecture, error)
	LectureShares(ctx context.Context, lectureID string) ([]models.Share, error)
	RevokeLectureShare(ctx context.Context, shareID string) error
}

type sharesService struct {
	api   sharesAPI
	cache *cache.Cache
}

func NewSharesService(api sharesAPI, c *cache.Cache) SharesService {
	return &sharesService{api: api, cache: c}
}

func (s *sharesService) ShareDocument(ctx context.Context, documentID, userID string) error {
	if err := s.api.ShareDocument(ctx, documentID, userID); err != nil {
		return err
	}
	s.cache.Invalidate("shares/documents")
	return nil
}

func (s *sharesService) SharedDocuments(ctx context.Context) ([]models.Document, error) {
	key := "shares/documents/incoming"
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Document), nil
	}
	docs, err := s.api.SharedDocuments(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, docs)
	return docs, nil
}

func (s *sharesService) DocumentShares(ctx context.Context, documentID string) ([]models.Share, error) {
	key := "shares/documents/by-document/" + documentID
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Share), nil
	}
	shares, err := s.api.DocumentShares(ctx, documentID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, shares)
	return shares, nil
}

func (s *sharesService) RevokeDocumentShare(ctx context.Context, shareID string) error {
	if err := s.api.RevokeDocumentShare(ctx, shareID); err != nil {
		return err
	}
	s.cache.Invalidate("shares/documents")
	return nil
}

func (s *sharesService) ShareLecture(ctx context.Context, lectureID, userID string) error {
	if err := s.api.ShareLecture(ctx, lectureID, userID); err != nil {
		return err
	}
	s.cache.Invalidate("shares/lectures")
	return nil
}

func (s *sharesService) SharedLectures(ctx context.Context) ([]models.Lecture, error) {
	key := "shares/lectures/incoming"
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Lecture), nil
	}
	lecs, err := s.api.SharedLectures(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, lecs)
	return lecs, nil
}

func (s *sharesService) LectureShares(ctx context.Context, lectureID string) ([]models.Share, error) {
	key := "shares/lectures/by-lecture/" + lectureID
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Share), nil
	}
	shares, err := s.api.LectureShares(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, shares)
	return shares, nil
}

func (s *sharesService) RevokeLectureShare(ctx context.Context, shareID string) error {
	if err := s.api.RevokeLectureShare(ctx, shareID); err != nil {
		return err
	}
	s.cache.Invalidate("shares/lectures")
	return nil
}
