package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type questionResponse struct {
	Question *models.Question `json:"question"`
}

type questionListResponse struct {
	Questions  []models.Question  `json:"questions"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

type answerResponse struct {
	Answer *models.Answer `json:"answer"`
}

type statusUpdate struct {
	Status string `json:"status"`
}

func attachmentFiles(field string, attachments []models.Attachment) []formFile {
	var files []formFile
	for _, a := range attachments {
		files = append(files, formFile{field: field, fileName: a.Name, data: a.Data})
	}
	return files
}

func (c *HTTPClient) CreateQuestion(ctx context.Context, up models.QuestionUpload) (*models.Question, error) {
	fields := []formField{
		{name: "title", value: up.Title},
		{name: "content", value: up.Content},
	}
	if len(up.Tags) > 0 {
		fields = append(fields, formField{name: "tags", value: strings.Join(up.Tags, ",")})
	}
	var resp questionResponse
	err := c.sendMultipart(ctx, http.MethodPost, "/api/qa/questions",
		fields, attachmentFiles("attachments", up.Attachments), &resp)
	if err != nil {
		return nil, err
	}
	return resp.Question, nil
}

func (c *HTTPClient) UpdateQuestionStatus(ctx context.Context, questionID, status string) error {
	return c.sendJSON(ctx, http.MethodPatch, "/api/qa/questions/"+questionID+"/status", statusUpdate{Status: status}, nil)
}

func (c *HTTPClient) CreateAnswer(ctx context.Context, up models.AnswerUpload) (*models.Answer, error) {
	fields := []formField{
		{name: "questionId", value: up.QuestionID},
		{name: "content", value: up.Content},
	}
	var resp answerResponse
	err := c.sendMultipart(ctx, http.MethodPost, "/api/qa/answers",
		fields, attachmentFiles("attachments", up.Attachments), &resp)
	if err != nil {
		return nil, err
	}
	return resp.Answer, nil
}

func (c *HTTPClient) UpdateAnswerStatus(ctx context.Context, answerID, status string) error {
	return c.sendJSON(ctx, http.MethodPatch, "/api/qa/answers/"+answerID+"/status", statusUpdate{Status: status}, nil)
}

// PublishedQuestions lists all published forum questions.
func (c *HTTPClient) PublishedQuestions(ctx context.Context) ([]models.Question, error) {
	var resp questionListResponse
	if err := c.getJSON(ctx, "/api/qa/questions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// QuestionDetail fetches one question with its answers.
func (c *HTTPClient) QuestionDetail(ctx context.Context, questionID string) (*models.Question, error) {
	var resp questionResponse
	if err := c.getJSON(ctx, "/api/qa/questions/"+questionID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Question, nil
}

// MyQA lists the signed-in user's questions and answered threads.
func (c *HTTPClient) MyQA(ctx context.Context) ([]models.Question, error) {
	var resp questionListResponse
	if err := c.getJSON(ctx, "/api/qa/my", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// SearchQuestions runs a text/tag search over published questions. It hits
// the same collection endpoint as PublishedQuestions; the query parameters
// narrow and page the result.
func (c *HTTPClient) SearchQuestions(ctx context.Context, query models.ListQuery) ([]models.Question, *models.Pagination, error) {
	q := pageQuery(query.Page, query.Limit)
	if query.Query != "" {
		q.Set("q", query.Query)
	}
	if query.Tag != "" {
		q.Set("tag", query.Tag)
	}
	var resp questionListResponse
	if err := c.getJSON(ctx, "/api/qa/questions", q, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Questions, resp.Pagination, nil
}
