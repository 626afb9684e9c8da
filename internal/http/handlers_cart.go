package httpx

import (
	"errors"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// CartHandlers serves the shopper's cart. All routes sit behind RequireSession.
type CartHandlers struct {
	Backend *upstream.Client
	Errors  *ErrorRenderer
}

// Get fetches the cart.
// GET /api/cart.
func (h *CartHandlers) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Backend.Cart(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cart)
}

// Add adds a product line.
// POST /api/cart.
func (h *CartHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var add model.CartAdd
	if !DecodeJSON(w, r, &add) {
		return
	}

	item, err := h.Backend.AddToCart(r.Context(), add)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

// UpdateQuantity changes one line's quantity.
// PATCH /api/cart/{id}.
func (h *CartHandlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("cart item id must be a positive integer")})
		return
	}

	var update model.CartQuantityUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}

	item, err := h.Backend.UpdateCartQuantity(r.Context(), id, update.Quantity)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Remove deletes one line.
// DELETE /api/cart/{id}.
func (h *CartHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("cart item id must be a positive integer")})
		return
	}

	if err := h.Backend.RemoveFromCart(r.Context(), id); err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
