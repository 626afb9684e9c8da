package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// AccountHandlers serves the shopper's profile, wallet, coupons, and
// donations. All routes sit behind RequireSession.
type AccountHandlers struct {
	Backend *upstream.Client
	Errors  *ErrorRenderer
}

// Profile fetches the signed-in shopper's account view.
// GET /api/members/me.
func (h *AccountHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Backend.Profile(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile edits the shopper's profile fields.
// PATCH /api/members/me.
func (h *AccountHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update model.ProfileUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}

	profile, err := h.Backend.UpdateProfile(r.Context(), update)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// accountOverview aggregates the "my page" view into one response.
type accountOverview struct {
	Profile model.Profile  `json:"profile"`
	Wallet  model.Wallet   `json:"wallet"`
	Coupons []model.Coupon `json:"coupons"`
}

// Overview fetches profile, wallet, and coupons concurrently for the
// shopper's account landing page. One failing leg fails the whole response.
// GET /api/members/me/overview.
func (h *AccountHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	var overview accountOverview

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		profile, err := h.Backend.Profile(ctx)
		if err != nil {
			return err
		}
		overview.Profile = profile
		return nil
	})
	g.Go(func() error {
		wallet, err := h.Backend.Wallet(ctx)
		if err != nil {
			return err
		}
		overview.Wallet = wallet
		return nil
	})
	g.Go(func() error {
		coupons, err := h.Backend.Coupons(ctx)
		if err != nil {
			return err
		}
		overview.Coupons = coupons
		return nil
	})

	if err := g.Wait(); err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

// Wallet fetches the point balance.
// GET /api/wallet.
func (h *AccountHandlers) Wallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.Backend.Wallet(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, wallet)
}

// WalletTransactions lists the wallet ledger.
// GET /api/wallet/transactions.
func (h *AccountHandlers) WalletTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Backend.WalletTransactions(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, txs)
}

// Coupons lists the shopper's coupons.
// GET /api/coupons.
func (h *AccountHandlers) Coupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Backend.Coupons(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, coupons)
}

// RedeemCoupon claims a coupon by its printed code.
// POST /api/coupons/redeem.
func (h *AccountHandlers) RedeemCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.CouponRedeem
	if !DecodeJSON(w, r, &req) {
		return
	}

	coupon, err := h.Backend.RedeemCoupon(r.Context(), req.Code)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, coupon)
}

// DonationAccount fetches the shopper's donation summary.
// GET /api/donations/account.
func (h *AccountHandlers) DonationAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.Backend.DonationAccount(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

// Donations lists the shopper's donation history.
// GET /api/donations.
func (h *AccountHandlers) Donations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.Backend.Donations(r.Context())
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, donations)
}

// Donate donates wallet points to a campaign.
// POST /api/donations.
func (h *AccountHandlers) Donate(w http.ResponseWriter, r *http.Request) {
	var req model.DonationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	donation, err := h.Backend.Donate(r.Context(), req)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, donation)
}
