package services

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type lecturesAPI interface {
	CreateLecture(ctx context.Context, up models.LectureUpload) (*models.Lecture, error)
	UpdateLecture(ctx context.Context, id string, up models.LectureUpload) (*models.Lecture, error)
	DeleteLecture(ctx context.Context, id string) error
	Lecture(ctx context.Context, id string) (*models.Lecture, error)
	UserLectures(ctx context.Context) ([]models.Lecture, error)
	PublicLectures(ctx context.Context, page, limit int) ([]models.Lecture, *models.Pagination, error)
}

// LecturesService manages recorded lectures.
type LecturesService interface {
	Upload(ctx context.Context, up models.LectureUpload) (*models.Lecture, error)
	Update(ctx context.Context, id string, up models.LectureUpload) (*models.Lecture, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Lecture, error)
	Mine(ctx context.Context) ([]models.Lecture, error)
	Public(ctx context.Context, page, limit int) ([]models.Lecture, *models.Pagination, error)
}

type lecturesService struct {
	api   lecturesAPI
	cache *cache.Cache
}

func NewLecturesService(api lecturesAPI, c *cache.Cache) LecturesService {
	return &lecturesService{api: api, cache: c}
}

func (s *lecturesService) Upload(ctx context.Context, up models.LectureUpload) (*models.Lecture, error) {
	lec, err := s.api.CreateLecture(ctx, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("lectures")
	return lec, nil
}

func (s *lecturesService) Update(ctx context.Context, id string, up models.LectureUpload) (*models.Lecture, error) {
	lec, err := s.api.UpdateLecture(ctx, id, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("lectures")
	return lec, nil
}

func (s *lecturesService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteLecture(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate("lectures", "saved", "shares")
	return nil
}

func (s *lecturesService) Get(ctx context.Context, id string) (*models.Lecture, error) {
	key := "lectures/id/" + id
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.(*models.Lecture), nil
	}
	lec, err := s.api.Lecture(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, lec)
	return lec, nil
}

func (s *lecturesService) Mine(ctx context.Context) ([]models.Lecture, error) {
	key := "lectures/mine"
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Lecture), nil
	}
	lecs, err := s.api.UserLectures(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, lecs)
	return lecs, nil
}

type lecturePage struct {
	lectures   []models.Lecture
	pagination *models.Pagination
}

func (s *lecturesService) Public(ctx context.Context, page, limit int) ([]models.Lecture, *models.Pagination, error) {
	key := fmt.Sprintf("lectures/public/%d/%d", page, limit)
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		p := v.(lecturePage)
		return p.lectures, p.pagination, nil
	}
	lecs, pg, err := s.api.PublicLectures(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}
	s.cache.Set(key, lecturePage{lectures: lecs, pagination: pg})
	return lecs, pg, nil
}
