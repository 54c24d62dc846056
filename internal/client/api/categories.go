package api

import (
	"context"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type categoryResponse struct {
	Category *models.Category `json:"category"`
}

type categoryListResponse struct {
	Categories []models.Category  `json:"categories"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Categories lists categories; inactive ones are included when
// includeInactive is set.
func (c *HTTPClient) Categories(ctx context.Context, query models.ListQuery, includeInactive bool) ([]models.Category, error) {
	q := pageQuery(query.Page, query.Limit)
	if query.Query != "" {
		q.Set("q", query.Query)
	}
	if includeInactive {
		q.Set("active", "false")
	}
	var resp categoryListResponse
	if err := c.getJSON(ctx, "/api/categories", q, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *HTTPClient) Category(ctx context.Context, id string) (*models.Category, error) {
	var resp categoryResponse
	if err := c.getJSON(ctx, "/api/categories/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Category, nil
}

func (c *HTTPClient) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var resp categoryResponse
	if err := c.getJSON(ctx, "/api/categories/by-slug/"+slug, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Category, nil
}
