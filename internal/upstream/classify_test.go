package upstream

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublic(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		public bool
	}{
		{"login is public", http.MethodPost, "/api/v1/auth/login", true},
		{"signup is public", http.MethodPost, "/api/v1/auth/signup", true},
		{"oauth callback exchange is public", http.MethodPost, "/api/v1/auth/oauth/login", true},
		{"product browse is public", http.MethodGet, "/api/v1/products", true},
		{"product detail is public", http.MethodGet, "/api/v1/products/42", true},
		{"category browse is public", http.MethodGet, "/api/v1/categories", true},
		{"market detail is public", http.MethodGet, "/api/v1/markets/7", true},
		{"cart is private", http.MethodGet, "/api/v1/carts", false},
		{"orders are private", http.MethodPost, "/api/v1/orders", false},
		{"wallet is private", http.MethodGet, "/api/v1/wallet", false},
		{"seller product write is private", http.MethodPost, "/api/v1/seller/products", false},
		{"profile is private", http.MethodGet, "/api/v1/members/me", false},
		{"admin review is private", http.MethodPost, "/api/v1/admin/seller-requests/1/approve", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.public, IsPublic(tc.method, tc.path))
		})
	}
}
