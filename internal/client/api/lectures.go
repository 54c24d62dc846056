package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type lectureResponse struct {
	Lecture *models.Lecture `json:"lecture"`
}

type lectureListResponse struct {
	Lectures   []models.Lecture   `json:"lectures"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

func lectureFields(up models.LectureUpload) ([]formField, []formFile, error) {
	fields := []formField{
		{name: "title", value: up.Title},
		{name: "description", value: up.Description},
	}
	if up.IsPublic != nil {
		fields = append(fields, formField{name: "isPublic", value: strconv.FormatBool(*up.IsPublic)})
	}
	if up.Category != "" {
		fields = append(fields, formField{name: "category", value: up.Category})
	}
	for _, kw := range up.Keywords {
		fields = append(fields, formField{name: "keywords", value: kw})
	}
	if len(up.AllowedUsers) > 0 {
		users, err := json.Marshal(up.AllowedUsers)
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, formField{name: "allowedUsers", value: string(users)})
	}

	var files []formFile
	if len(up.Video) > 0 {
		files = append(files, formFile{field: "video", fileName: up.VideoName, data: up.Video})
	}
	return fields, files, nil
}

func (c *HTTPClient) CreateLecture(ctx context.Context, up models.LectureUpload) (*models.Lecture, error) {
	fields, files, err := lectureFields(up)
	if err != nil {
		return nil, err
	}
	var resp lectureResponse
	if err := c.sendMultipart(ctx, http.MethodPost, "/api/lectures", fields, files, &resp); err != nil {
		return nil, err
	}
	return resp.Lecture, nil
}

func (c *HTTPClient) UpdateLecture(ctx context.Context, id string, up models.LectureUpload) (*models.Lecture, error) {
	fields, files, err := lectureFields(up)
	if err != nil {
		return nil, err
	}
	var resp lectureResponse
	if err := c.sendMultipart(ctx, http.MethodPut, "/api/lectures/"+id, fields, files, &resp); err != nil {
		return nil, err
	}
	return resp.Lecture, nil
}

func (c *HTTPClient) DeleteLecture(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/lectures/"+id)
}

func (c *HTTPClient) Lecture(ctx context.Context, id string) (*models.Lecture, error) {
	var resp lectureResponse
	if err := c.getJSON(ctx, "/api/lectures/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lecture, nil
}

func (c *HTTPClient) UserLectures(ctx context.Context) ([]models.Lecture, error) {
	var resp lectureListResponse
	if err := c.getJSON(ctx, "/api/lectures/user", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lectures, nil
}

func (c *HTTPClient) PublicLectures(ctx context.Context, page, limit int) ([]models.Lecture, *models.Pagination, error) {
	var resp lectureListResponse
	if err := c.getJSON(ctx, "/api/lectures/public", pageQuery(page, limit), &resp); err != nil {
		return nil, nil, err
	}
	return resp.Lectures, resp.Pagination, nil
}
