package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type documentResponse struct {
	Document *models.Document `json:"document"`
}

type documentListResponse struct {
	Documents  []models.Document  `json:"documents"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// documentFields flattens an upload form into multipart fields, matching
// what the backend's document endpoints expect.
func documentFields(up models.DocumentUpload) ([]formField, []formFile, error) {
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
	if len(up.File) > 0 {
		files = append(files, formFile{field: "file", fileName: up.FileName, data: up.File})
	}
	return fields, files, nil
}

func (c *HTTPClient) CreateDocument(ctx context.Context, up models.DocumentUpload) (*models.Document, error) {
	fields, files, err := documentFields(up)
	if err != nil {
		return nil, err
	}
	var resp documentResponse
	if err := c.sendMultipart(ctx, http.MethodPost, "/api/documents", fields, files, &resp); err != nil {
		return nil, err
	}
	return resp.Document, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id string, up models.DocumentUpload) (*models.Document, error) {
	fields, files, err := documentFields(up)
	if err != nil {
		return nil, err
	}
	var resp documentResponse
	if err := c.sendMultipart(ctx, http.MethodPut, "/api/documents/"+id, fields, files, &resp); err != nil {
		return nil, err
	}
	return resp.Document, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/documents/"+id)
}

func (c *HTTPClient) Document(ctx context.Context, id string) (*models.Document, error) {
	var resp documentResponse
	if err := c.getJSON(ctx, "/api/documents/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Document, nil
}

// UserDocuments lists documents owned by the signed-in user.
func (c *HTTPClient) UserDocuments(ctx context.Context) ([]models.Document, error) {
	var resp documentListResponse
	if err := c.getJSON(ctx, "/api/documents/user", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// PublicDocuments lists publicly visible documents, paginated.
func (c *HTTPClient) PublicDocuments(ctx context.Context, page, limit int) ([]models.Document, *models.Pagination, error) {
	var resp documentListResponse
	if err := c.getJSON(ctx, "/api/documents/public", pageQuery(page, limit), &resp); err != nil {
		return nil, nil, err
	}
	return resp.Documents, resp.Pagination, nil
}

// DownloadDocument fetches the raw file body of a document.
func (c *HTTPClient) DownloadDocument(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, call{
		method: http.MethodGet,
		path:   "/api/documents/" + id + "/download",
	})
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
