package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	productsPath   = "/products"
	categoriesPath = "/categories"
)

// ListParams is the server-facing parameter set for a product list request.
// Zero-valued optional fields are omitted from the query string.
type ListParams struct {
	Title      string
	CategoryID int
	PriceMin   int
	PriceMax   int
	Offset     int
	Limit      int
}

// Values renders the parameters as URL query values.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Title != "" {
		q.Set("title", p.Title)
	}
	if p.CategoryID > 0 {
		q.Set("categoryId", strconv.Itoa(p.CategoryID))
	}
	if p.PriceMin > 0 {
		q.Set("price_min", strconv.Itoa(p.PriceMin))
	}
	if p.PriceMax > 0 {
		q.Set("price_max", strconv.Itoa(p.PriceMax))
	}
	q.Set("offset", strconv.Itoa(p.Offset))
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Key returns a canonical string for the parameter set, stable across
// identical values, suitable as part of a cache key.
func (p ListParams) Key() string {
	return fmt.Sprintf("title=%s&categoryId=%d&price_min=%d&price_max=%d&offset=%d&limit=%d",
		url.QueryEscape(p.Title), p.CategoryID, p.PriceMin, p.PriceMax, p.Offset, p.Limit)
}

// ListProducts fetches products matching the given parameters. Filters are
// applied server-side; the parameters are forwarded verbatim.
func (c *Client) ListProducts(ctx context.Context, params ListParams) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, productsPath, params.Values(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", productsPath, id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product and returns it with its assigned id.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, productsPath, nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update and returns the updated product.
func (c *Client) UpdateProduct(ctx context.Context, id int, req UpdateProductRequest) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", productsPath, id), nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a product. The server answers with a bare boolean.
func (c *Client) DeleteProduct(ctx context.Context, id int) (bool, error) {
	var ok bool
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", productsPath, id), nil, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
