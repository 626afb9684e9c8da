package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// Cart endpoints. Private: the interceptor rejects these before sending when
// no credential is present.

// Cart fetches the shopper's cart.
func (c *Client) Cart(ctx context.Context) (model.Cart, error) {
	var cart model.Cart
	if err := c.do(ctx, http.MethodGet, "/api/v1/carts", nil, &cart); err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// AddToCart adds a product line.
func (c *Client) AddToCart(ctx context.Context, add model.CartAdd) (model.CartItem, error) {
	var item model.CartItem
	if err := c.do(ctx, http.MethodPost, "/api/v1/carts", add, &item); err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// UpdateCartQuantity changes one line's quantity.
func (c *Client) UpdateCartQuantity(ctx context.Context, itemID int64, quantity int) (model.CartItem, error) {
	var item model.CartItem
	path := fmt.Sprintf("/api/v1/carts/%d", itemID)
	if err := c.do(ctx, http.MethodPatch, path, model.CartQuantityUpdate{Quantity: quantity}, &item); err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// RemoveFromCart deletes one line.
func (c *Client) RemoveFromCart(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/carts/%d", itemID), nil, nil)
}
