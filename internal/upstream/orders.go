package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// PlaceOrder submits an order. Callers must set an idempotency key so
// retried submissions do not double-charge.
func (c *Client) PlaceOrder(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", req, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// Orders lists the shopper's order history.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one order.
func (c *Client) Order(ctx context.Context, id int64) (model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", id), nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// CancelOrder cancels an order that has not shipped.
func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", id), nil, nil)
}

// PaymentResult relays the payment gateway's confirmation for an order.
func (c *Client) PaymentResult(ctx context.Context, orderID int64) (model.PaymentResult, error) {
	var result model.PaymentResult
	path := fmt.Sprintf("/api/v1/orders/%d/payment", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return model.PaymentResult{}, err
	}
	return result, nil
}
