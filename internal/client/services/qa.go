package services

import (
	"context"

	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type qaAPI interface {
	CreateQuestion(ctx context.Context, up models.QuestionUpload) (*models.Question, error)
	UpdateQuestionStatus(ctx context.Context, questionID, status string) error
	CreateAnswer(ctx context.Context, up models.AnswerUpload) (*models.Answer, error)
	UpdateAnswerStatus(ctx context.Context, answerID, status string) error
	PublishedQuestions(ctx context.Context) ([]models.Question, error)
	QuestionDetail(ctx context.Context, questionID string) (*models.Question, error)
	MyQA(ctx context.Context) ([]models.Question, error)
	SearchQuestions(ctx context.Context, query models.ListQuery) ([]models.Question, *models.Pagination, error)
}

// QAService manages the question and answer board.
type QAService interface {
	AskQuestion(ctx context.Context, up models.QuestionUpload) (*models.Question, error)
	SetQuestionStatus(ctx context.Context, questionID, status string) error
	PostAnswer(ctx context.Context, up models.AnswerUpload) (*models.Answer, error)
	SetAnswerStatus(ctx context.Context, answerID, status string) error
	Published(ctx context.Context) ([]models.Question, error)
	Question(ctx context.Context, questionID string) (*models.Question, error)
	Mine(ctx context.Context) ([]models.Question, error)
	Search(ctx context.Context, query models.ListQuery) ([]models.Question, *models.Pagination, error)
}

type qaService struct {
	api   qaAPI
	cache *cache.Cache
}

func NewQAService(api qaAPI, c *cache.Cache) QAService {
	return &qaService{api: api, cache: c}
}

func (s *qaService) AskQuestion(ctx context.Context, up models.QuestionUpload) (*models.Question, error) {
	q, err := s.api.CreateQuestion(ctx, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("qa")
	return q, nil
}

func (s *qaService) SetQuestionStatus(ctx context.Context, questionID, status string) error {
	if err := s.api.UpdateQuestionStatus(ctx, questionID, status); err != nil {
		return err
	}
	s.cache.Invalidate("qa")
	return nil
}

// PostAnswer submits an answer and drops the cached detail of its question,
// so the next read shows the new answer immediately.
func (s *qaService) PostAnswer(ctx context.Context, up models.AnswerUpload) (*models.Answer, error) {
	a, err := s.api.CreateAnswer(ctx, up)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate("qa/question/"+up.QuestionID, "qa/mine")
	return a, nil
}

func (s *qaService) SetAnswerStatus(ctx context.Context, answerID, status string) error {
	if err := s.api.UpdateAnswerStatus(ctx, answerID, status); err != nil {
		return err
	}
	s.cache.Invalidate("qa")
	return nil
}

func (s *qaService) Published(ctx context.Context) ([]models.Question, error) {
	key := "qa/published"
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Question), nil
	}
	qs, err := s.api.PublishedQuestions(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, qs)
	return qs, nil
}

func (s *qaService) Question(ctx context.Context, questionID string) (*models.Question, error) {
	key := "qa/question/" + questionID
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.(*models.Question), nil
	}
	q, err := s.api.QuestionDetail(ctx, questionID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, q)
	return q, nil
}

func (s *qaService) Mine(ctx context.Context) ([]models.Question, error) {
	key := "qa/mine"
	if v, ok := s.cache.GetFresh(key, cacheTTL); ok {
		return v.([]models.Question), nil
	}
	qs, err := s.api.MyQA(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, qs)
	return qs, nil
}

// Search always hits the backend. Queries are too varied for caching to
// pay off.
func (s *qaService) Search(ctx context.Context, query models.ListQuery) ([]models.Question, *models.Pagination, error) {
	return s.api.SearchQuestions(ctx, query)
}
