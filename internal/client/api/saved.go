package api

import (
	"context"
	"net/http"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type saveItemRequest struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref"`
}

type savedListResponse struct {
	Items      []models.SavedItem `json:"items"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// SaveItem bookmarks a question, document, lecture, or collection.
func (c *HTTPClient) SaveItem(ctx context.Context, kind, ref string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/saved", saveItemRequest{Kind: kind, Ref: ref}, nil)
}

// RemoveSavedItem drops a bookmark.
func (c *HTTPClient) RemoveSavedItem(ctx context.Context, kind, ref string) error {
	return c.delete(ctx, "/api/saved/"+kind+"/"+ref)
}

// SavedItems lists bookmarks, optionally filtered by kind.
func (c *HTTPClient) SavedItems(ctx context.Context, kind string, page, limit int) ([]models.SavedItem, *models.Pagination, error) {
	q := pageQuery(page, limit)
	if kind != "" {
		q.Set("kind", kind)
	}
	var resp savedListResponse
	if err := c.getJSON(ctx, "/api/saved", q, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Items, resp.Pagination, nil
}
