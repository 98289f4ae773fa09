package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gofrs/uuid/v5"

	"github.com/higuga/higuga/internal/model"
)

// ListCategories returns all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.doJSON(ctx, http.MethodGet, "/categories", nil, nil, &out)
	return out, err
}

// SearchCategories filters categories by name.
func (c *Client) SearchCategories(ctx context.Context, searchWord string) ([]model.Category, error) {
	q := url.Values{}
	if searchWord != "" {
		q.Set("search_word", searchWord)
	}
	var out []model.Category
	err := c.doJSON(ctx, http.MethodGet, "/categories/search", q, nil, &out)
	return out, err
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	var out model.Category
	err := c.doJSON(ctx, http.MethodPost, "/categories", nil, map[string]string{"name": name}, &out)
	return out, err
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (model.Category, error) {
	body := map[string]string{"id": id.String(), "name": name}
	var out model.Category
	err := c.doJSON(ctx, http.MethodPut, "/categories", nil, body, &out)
	return out, err
}
