package httpx

import (
	"errors"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// MarketHandlers serves the public storefront catalog: products, categories,
// and seller shop fronts. A signed-in shopper's credential still rides along
// so the backend can personalize results.
type MarketHandlers struct {
	Backend *upstream.Client
	Errors  *ErrorRenderer
}

// Products lists the catalog.
// GET /api/products?keyword=&categoryId=&marketId=&page=&size=.
func (h *MarketHandlers) Products(w http.ResponseWriter, r *http.Request) {
	query := model.ProductQuery{
		Keyword:    r.URL.Query().Get("keyword"),
		CategoryID: int64(parseIntQuery(r, "categoryId", 0)),
		MarketID:   int64(parseIntQuery(r, "marketId", 0)),
		Page:       parseIntQuery(r, "page", 0),
		Size:       parseIntQuery(r, "size", 0),
	}

	page, err := h.Backend.Products(r.Context(), query)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Product fetches one catalog entry.
// GET /api/products/{id}.
func (h *MarketHandlers) Product(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("product id must be a positive integer")})
		return
	}

	product, err := h.Backend.Product(r.Context(), id)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Categories lists the category tree.
// GET /api/categories.
func (h *MarketHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Backend.Categories(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

// Market fetches one seller shop front.
// GET /api/markets/{id}.
func (h *MarketHandlers) Market(w http.ResponseWriter, r *http.Request) {
	id := parseInt64Path(r, "id")
	if id <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("market id must be a positive integer")})
		return
	}

	market, err := h.Backend.Market(r.Context(), id)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, market)
}
