package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListQuery configures /products requests. Zero values are omitted from the
// query string.
type ListQuery struct {
	Page      int
	SortBy    string
	SortOrder string
	Category  string
	Search    string
}

// ListProducts retrieves one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, query ListQuery) (ProductPage, error) {
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if sortBy := strings.TrimSpace(query.SortBy); sortBy != "" {
		values.Set("sortBy", sortBy)
	}
	if order := strings.TrimSpace(query.SortOrder); order != "" {
		values.Set("sortOrder", order)
	}
	if category := strings.TrimSpace(query.Category); category != "" {
		values.Set("category", category)
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		values.Set("search", search)
	}

	var page ProductPage
	if err := c.get(ctx, "/products", values, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// GetProduct retrieves a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, fmt.Errorf("product id required")
	}
	var product Product
	if err := c.get(ctx, "/products/"+id, nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// CreateProduct adds a catalog entry. Requires an admin token.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var product Product
	if err := c.send(ctx, http.MethodPost, "/products", input, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces the writable fields of a catalog entry. Requires an
// admin token.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, fmt.Errorf("product id required")
	}
	var product Product
	if err := c.send(ctx, http.MethodPut, "/products/"+id, input, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a catalog entry. Requires an admin token.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("product id required")
	}
	return c.send(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}
