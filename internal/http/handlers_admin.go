package httpx

import (
	"errors"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/upstream"
)

// AdminHandlers serves the seller-application review queue. All routes sit
// behind RequireRoles("ADMIN").
type AdminHandlers struct {
	Backend *upstream.Client
	Errors  *ErrorRenderer
}

// SellerRequests lists pending seller applications.
// GET /api/admin/seller-requests.
func (h *AdminHandlers) SellerRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Backend.SellerRequests(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}

// ReviewSellerRequest approves or rejects one application.
// POST /api/admin/seller-requests/{id}/{verdict} where verdict is approve or reject.
func (h *AdminHandlers) ReviewSellerRequest(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("request id must be a positive integer")})
		return
	}

	verdict := r.PathValue("verdict")
	if verdict != "approve" && verdict != "reject" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_verdict", Err: errors.New("verdict must be approve or reject")})
		return
	}

	if err := h.Backend.ReviewSellerRequest(r.Context(), id, verdict == "approve"); err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": verdict + "d"})
}
