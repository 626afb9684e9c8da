package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// Catalog endpoints. All reads here are public by classification; a present
// credential is still attached so the backend can personalize results.

// Products lists the catalog with optional filters.
func (c *Client) Products(ctx context.Context, query model.ProductQuery) (model.ProductPage, error) {
	q := url.Values{}
	if query.Keyword != "" {
		q.Set("keyword", query.Keyword)
	}
	if query.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(query.CategoryID, 10))
	}
	if query.MarketID > 0 {
		q.Set("marketId", strconv.FormatInt(query.MarketID, 10))
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Size > 0 {
		q.Set("size", strconv.Itoa(query.Size))
	}

	path := "/api/v1/products"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page model.ProductPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return model.ProductPage{}, err
	}
	return page, nil
}

// Product fetches one catalog entry.
func (c *Client) Product(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// Categories lists the category tree.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Market fetches one seller shop front.
func (c *Client) Market(ctx context.Context, id int64) (model.Market, error) {
	var market model.Market
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/markets/%d", id), nil, &market); err != nil {
		return model.Market{}, err
	}
	return market, nil
}
