package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type collectionResponse struct {
	Collection *models.Collection `json:"collection"`
}

type collectionListResponse struct {
	Collections []models.Collection `json:"collections"`
	Pagination  *models.Pagination  `json:"pagination,omitempty"`
}

func collectionFields(up models.CollectionUpload) ([]formField, []formFile) {
	fields := []formField{
		{name: "name", value: up.Name},
		{name: "description", value: up.Description},
	}
	if up.IsPublic != nil {
		fields = append(fields, formField{name: "isPublic", value: strconv.FormatBool(*up.IsPublic)})
	}

	var files []formFile
	if len(up.Cover) > 0 {
		files = append(files, formFile{field: "cover", fileName: up.CoverName, data: up.Cover})
	}
	return fields, files
}

func (c *HTTPClient) CreateCollection(ctx context.Context, up models.CollectionUpload) (*models.Collection, error) {
	fields, files := collectionFields(up)
	var resp collectionResponse
	if err := c.sendMultipart(ctx, http.MethodPost, "/api/collections", fields, files, &resp); err != nil {
		return nil, err
	}
	return resp.Collection, nil
}

func (c *HTTPClient) UpdateCollection(ctx context.Context, id string, up models.CollectionUpload) (*models.Collection, error) {
	fields, files := collectionFields(up)
	var resp collectionResponse
	if err := c.sendMultipart(ctx, http.MethodPut, "/api/collections/"+id, fields, files, &resp); err != nil {
		return nil, err
	}
	return resp.Collection, nil
}

func (c *HTTPClient) DeleteCollection(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/collections/"+id)
}

func (c *HTTPClient) Collection(ctx context.Context, id string) (*models.Collection, error) {
	var resp collectionResponse
	if err := c.getJSON(ctx, "/api/collections/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collection, nil
}

// Collections lists collections; mine=true restricts to the signed-in
// user's own.
func (c *HTTPClient) Collections(ctx context.Context, mine bool, page, limit int) ([]models.Collection, *models.Pagination, error) {
	q := pageQuery(page, limit)
	if mine {
		q.Set("mine", "true")
	}
	var resp collectionListResponse
	if err := c.getJSON(ctx, "/api/collections", q, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Collections, resp.Pagination, nil
}

type collectionItemsRequest struct {
	Items []models.CollectionItemInput `json:"items"`
}

type reorderItemsRequest struct {
	Kind  string   `json:"kind"`
	Order []string `json:"order"`
}

// AddCollectionItems appends documents or lectures to a collection.
func (c *HTTPClient) AddCollectionItems(ctx context.Context, id string, items []models.CollectionItemInput) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/collections/"+id+"/items",
		collectionItemsRequest{Items: items}, nil)
}

// RemoveCollectionItem removes one item from a collection. The backend
// disambiguates the item table by kind.
func (c *HTTPClient) RemoveCollectionItem(ctx context.Context, id, itemID, kind string) error {
	q := url.Values{}
	q.Set("kind", kind)
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/api/collections/" + id + "/items/" + itemID,
		query:  q,
	}, nil)
}

// ReorderCollectionItems replaces the display order of a collection's items
// of the given kind.
func (c *HTTPClient) ReorderCollectionItems(ctx context.Context, id, kind string, order []string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/collections/"+id+"/items/reorder",
		reorderItemsRequest{Kind: kind, Order: order}, nil)
}
