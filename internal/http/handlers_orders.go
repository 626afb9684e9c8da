package httpx

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// OrderHandlers serves order placement and history. All routes sit behind
// RequireSession.
type OrderHandlers struct {
	Backend *upstream.Client
	Errors  *ErrorRenderer
}

// Place submits an order. A missing idempotency key is filled in here so a
// retried browser submission cannot double-charge.
// POST /api/orders.
func (h *OrderHandlers) Place(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.CartItemIDs) == 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "empty_order", Err: errors.New("at least one cart item is required")})
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	order, err := h.Backend.PlaceOrder(r.Context(), req)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, order)
}

// List returns the shopper's order history.
// GET /api/orders.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Backend.Orders(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

// Get fetches one order.
// GET /api/orders/{id}.
func (h *OrderHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("order id must be a positive integer")})
		return
	}

	order, err := h.Backend.Order(r.Context(), id)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// Cancel cancels an order that has not shipped.
// POST /api/orders/{id}/cancel.
func (h *OrderHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("order id must be a positive integer")})
		return
	}

	if err := h.Backend.CancelOrder(r.Context(), id); err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

// Payment relays the payment gateway's confirmation for an order.
// GET /api/orders/{id}/payment.
func (h *OrderHandlers) Payment(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("order id must be a positive integer")})
		return
	}

	result, err := h.Backend.PaymentResult(r.Context(), id)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
