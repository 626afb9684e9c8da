package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// maxProductUploadSize bounds the multipart body for product image uploads.
const maxProductUploadSize = 10 << 20

// SellerHandlers serves the seller back-office. Apply sits behind
// RequireSession; everything else behind RequireSeller.
type SellerHandlers struct {
	Backend *upstream.Client
	Errors  *ErrorRenderer
}

// Apply files a seller application for the signed-in shopper.
// POST /api/seller/apply.
func (h *SellerHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req model.SellerRequestCreate
	if !DecodeJSON(w, r, &req) {
		return
	}

	request, err := h.Backend.ApplyForSeller(r.Context(), req)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, request)
}

// Dashboard fetches the back-office summary.
// GET /api/seller/dashboard.
func (h *SellerHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Backend.SellerDashboard(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard)
}

// Products lists the seller's own products.
// GET /api/seller/products.
func (h *SellerHandlers) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.Backend.SellerProducts(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, products)
}

// CreateProduct creates a product from a multipart form: a JSON "product"
// field plus an optional "image" file.
// POST /api/seller/products.
func (h *SellerHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	upsert, imageName, image, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.Close()
	}

	product, err := h.Backend.CreateSellerProduct(r.Context(), upsert, imageName, imageReader(image))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates a product, optionally replacing its image.
// PATCH /api/seller/products/{id}.
func (h *SellerHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("product id must be a positive integer")})
		return
	}

	upsert, imageName, image, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.Close()
	}

	product, err := h.Backend.UpdateSellerProduct(r.Context(), id, upsert, imageName, imageReader(image))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Orders lists orders placed against the seller's market.
// GET /api/seller/orders.
func (h *SellerHandlers) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Backend.SellerOrders(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

// Settlements lists the seller's payout history.
// GET /api/seller/settlements.
func (h *SellerHandlers) Settlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.Backend.Settlements(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, settlements)
}

// decodeProductForm parses the multipart product upload. Returns ok=false
// with the error already written.
func (h *SellerHandlers) decodeProductForm(w http.ResponseWriter, r *http.Request) (model.SellerProductUpsert, string, multipart.File, bool) {
	var upsert model.SellerProductUpsert

	if err := r.ParseMultipartForm(maxProductUploadSize); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return upsert, "", nil, false
	}

	payload := r.FormValue("product")
	if payload == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_product", Err: errors.New("product field is required")})
		return upsert, "", nil, false
	}
	if err := json.Unmarshal([]byte(payload), &upsert); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_product", Err: err})
		return upsert, "", nil, false
	}

	image, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return upsert, "", nil, true
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_image", Err: err})
		return upsert, "", nil, false
	}

	return upsert, header.Filename, image, true
}

// imageReader converts a possibly-nil multipart file into the io.Reader the
// backend client expects. A typed nil must not leak into the interface.
func imageReader(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}
