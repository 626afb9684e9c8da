package httpx

import (
	"log/slog"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/observability/statsd"
	"github.com/podomall/mall-ui-api/internal/token"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth         AuthService
	Backend      *upstream.Client
	Codec        *token.Codec
	CookieDomain string
	Logger       *slog.Logger
	Metrics      statsd.Sink
}

// NewRouter creates and configures the HTTP router. Middleware order matters:
// browser detection and session resolution run before any guard, so guards
// and handlers see the session and its upstream grant on the context.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := &ErrorRenderer{CookieDomain: services.CookieDomain, Logger: logger}
	guards := &Guards{
		Auth:         services.Auth,
		Codec:        services.Codec,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
		Metrics:      services.Metrics,
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Backend:      services.Backend,
		CookieDomain: services.CookieDomain,
		Errors:       renderer,
		Logger:       logger,
	}
	marketHandlers := &MarketHandlers{Backend: services.Backend, Errors: renderer}
	cartHandlers := &CartHandlers{Backend: services.Backend, Errors: renderer}
	orderHandlers := &OrderHandlers{Backend: services.Backend, Errors: renderer}
	accountHandlers := &AccountHandlers{Backend: services.Backend, Errors: renderer}
	sellerHandlers := &SellerHandlers{Backend: services.Backend, Errors: renderer}
	adminHandlers := &AdminHandlers{Backend: services.Backend, Errors: renderer}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	registerAuthRoutes(mux, authHandlers)
	registerMarketRoutes(mux, marketHandlers)
	registerCartRoutes(mux, cartHandlers, guards)
	registerOrderRoutes(mux, orderHandlers, guards)
	registerAccountRoutes(mux, accountHandlers, guards)
	registerSellerRoutes(mux, sellerHandlers, guards)
	registerAdminRoutes(mux, adminHandlers, guards)

	var handler http.Handler = mux
	handler = OptionalSession(services.Auth)(handler)
	handler = BrowserDetection()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.PasswordLogin)
	mux.HandleFunc("POST /api/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)

	// Social login runs as browser navigation, not XHR.
	mux.HandleFunc("GET /auth/login", h.SocialLogin)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

func registerMarketRoutes(mux *http.ServeMux, h *MarketHandlers) {
	mux.HandleFunc("GET /api/products", h.Products)
	mux.HandleFunc("GET /api/products/{id}", h.Product)
	mux.HandleFunc("GET /api/categories", h.Categories)
	mux.HandleFunc("GET /api/markets/{id}", h.Market)
}

func registerCartRoutes(mux *http.ServeMux, h *CartHandlers, g *Guards) {
	mux.Handle("GET /api/cart", g.RequireSession(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/cart", g.RequireSession(http.HandlerFunc(h.Add)))
	mux.Handle("PATCH /api/cart/{id}", g.RequireSession(http.HandlerFunc(h.UpdateQuantity)))
	mux.Handle("DELETE /api/cart/{id}", g.RequireSession(http.HandlerFunc(h.Remove)))
}

func registerOrderRoutes(mux *http.ServeMux, h *OrderHandlers, g *Guards) {
	mux.Handle("POST /api/orders", g.RequireSession(http.HandlerFunc(h.Place)))
	mux.Handle("GET /api/orders", g.RequireSession(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/orders/{id}", g.RequireSession(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/orders/{id}/cancel", g.RequireSession(http.HandlerFunc(h.Cancel)))
	mux.Handle("GET /api/orders/{id}/payment", g.RequireSession(http.HandlerFunc(h.Payment)))
}

func registerAccountRoutes(mux *http.ServeMux, h *AccountHandlers, g *Guards) {
	mux.Handle("GET /api/members/me", g.RequireSession(http.HandlerFunc(h.Profile)))
	mux.Handle("PATCH /api/members/me", g.RequireSession(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("GET /api/members/me/overview", g.RequireSession(http.HandlerFunc(h.Overview)))
	mux.Handle("GET /api/wallet", g.RequireSession(http.HandlerFunc(h.Wallet)))
	mux.Handle("GET /api/wallet/transactions", g.RequireSession(http.HandlerFunc(h.WalletTransactions)))
	mux.Handle("GET /api/coupons", g.RequireSession(http.HandlerFunc(h.Coupons)))
	mux.Handle("POST /api/coupons/redeem", g.RequireSession(http.HandlerFunc(h.RedeemCoupon)))
	mux.Handle("GET /api/donations/account", g.RequireSession(http.HandlerFunc(h.DonationAccount)))
	mux.Handle("GET /api/donations", g.RequireSession(http.HandlerFunc(h.Donations)))
	mux.Handle("POST /api/donations", g.RequireSession(http.HandlerFunc(h.Donate)))
}

func registerSellerRoutes(mux *http.ServeMux, h *SellerHandlers, g *Guards) {
	mux.Handle("POST /api/seller/apply", g.RequireSession(http.HandlerFunc(h.Apply)))

	mux.Handle("GET /api/seller/dashboard", g.RequireSeller(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /api/seller/products", g.RequireSeller(http.HandlerFunc(h.Products)))
	mux.Handle("POST /api/seller/products", g.RequireSeller(http.HandlerFunc(h.CreateProduct)))
	mux.Handle("PATCH /api/seller/products/{id}", g.RequireSeller(http.HandlerFunc(h.UpdateProduct)))
	mux.Handle("GET /api/seller/orders", g.RequireSeller(http.HandlerFunc(h.Orders)))
	mux.Handle("GET /api/seller/settlements", g.RequireSeller(http.HandlerFunc(h.Settlements)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, g *Guards) {
	requireAdmin := g.RequireRoles([]string{"ADMIN"}, false)
	mux.Handle("GET /api/admin/seller-requests", requireAdmin(http.HandlerFunc(h.SellerRequests)))
	mux.Handle("POST /api/admin/seller-requests/{id}/{verdict}", requireAdmin(http.HandlerFunc(h.ReviewSellerRequest)))
}
