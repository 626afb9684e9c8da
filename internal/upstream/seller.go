package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// Seller back-office and admin review endpoints. All private; the seller
// routes additionally sit behind the seller route guard in the HTTP layer.

// ApplyForSeller files a seller application for the signed-in shopper.
func (c *Client) ApplyForSeller(ctx context.Context, req model.SellerRequestCreate) (model.SellerRequest, error) {
	var request model.SellerRequest
	if err := c.do(ctx, http.MethodPost, "/api/v1/seller/requests", req, &request); err != nil {
		return model.SellerRequest{}, err
	}
	return request, nil
}

// SellerDashboard fetches the back-office summary.
func (c *Client) SellerDashboard(ctx context.Context) (model.SellerDashboard, error) {
	var dashboard model.SellerDashboard
	if err := c.do(ctx, http.MethodGet, "/api/v1/seller/dashboard", nil, &dashboard); err != nil {
		return model.SellerDashboard{}, err
	}
	return dashboard, nil
}

// SellerProducts lists the seller's own products.
func (c *Client) SellerProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/seller/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateSellerProduct creates a product with an optional image, sent as a
// multipart body. The multipart writer supplies the content type with its
// boundary; the interceptor strips any stale boundary-less value.
func (c *Client) CreateSellerProduct(ctx context.Context, upsert model.SellerProductUpsert, imageName string, image io.Reader) (model.Product, error) {
	contentType, body, err := encodeProductForm(upsert, imageName, image)
	if err != nil {
		return model.Product{}, err
	}

	var product model.Product
	if err := c.doMultipart(ctx, http.MethodPost, "/api/v1/seller/products", contentType, body, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// UpdateSellerProduct updates a product, optionally replacing its image.
func (c *Client) UpdateSellerProduct(ctx context.Context, productID int64, upsert model.SellerProductUpsert, imageName string, image io.Reader) (model.Product, error) {
	contentType, body, err := encodeProductForm(upsert, imageName, image)
	if err != nil {
		return model.Product{}, err
	}

	var product model.Product
	path := fmt.Sprintf("/api/v1/seller/products/%d", productID)
	if err := c.doMultipart(ctx, http.MethodPatch, path, contentType, body, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// SellerOrders lists orders placed against the seller's market.
func (c *Client) SellerOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/seller/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Settlements lists the seller's payout history.
func (c *Client) Settlements(ctx context.Context) ([]model.Settlement, error) {
	var settlements []model.Settlement
	if err := c.do(ctx, http.MethodGet, "/api/v1/seller/settlements", nil, &settlements); err != nil {
		return nil, err
	}
	return settlements, nil
}

// SellerRequests lists pending seller applications for admin review.
func (c *Client) SellerRequests(ctx context.Context) ([]model.SellerRequest, error) {
	var requests []model.SellerRequest
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/seller-requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ReviewSellerRequest approves or rejects a seller application.
func (c *Client) ReviewSellerRequest(ctx context.Context, requestID int64, approve bool) error {
	verb := "reject"
	if approve {
		verb = "approve"
	}
	path := fmt.Sprintf("/api/v1/admin/seller-requests/%d/%s", requestID, verb)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// encodeProductForm builds the multipart body for product create/update: a
// JSON "product" field plus an optional "image" file part.
func encodeProductForm(upsert model.SellerProductUpsert, imageName string, image io.Reader) (string, io.Reader, error) {
	payload, err := json.Marshal(upsert)
	if err != nil {
		return "", nil, fmt.Errorf("encode product payload: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if writeErr := writer.WriteField("product", string(payload)); writeErr != nil {
		return "", nil, fmt.Errorf("write product field: %w", writeErr)
	}

	if image != nil {
		part, partErr := writer.CreateFormFile("image", imageName)
		if partErr != nil {
			return "", nil, fmt.Errorf("create image part: %w", partErr)
		}
		if _, copyErr := io.Copy(part, image); copyErr != nil {
			return "", nil, fmt.Errorf("copy image: %w", copyErr)
		}
	}

	if closeErr := writer.Close(); closeErr != nil {
		return "", nil, fmt.Errorf("finalize multipart body: %w", closeErr)
	}

	return writer.FormDataContentType(), &buf, nil
}
