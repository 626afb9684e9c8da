package upstream

import (
	"context"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// Account endpoints. Login and signup are public by classification; profile
// reads and edits ride the caller's session grant.

// Login exchanges shopper credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, error) {
	var result model.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &result); err != nil {
		return model.LoginResult{}, err
	}
	return result, nil
}

// Signup registers a new shopper account.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/signup", req, nil)
}

// OAuthLogin trades a social-login provider token for a backend bearer token.
func (c *Client) OAuthLogin(ctx context.Context, provider, providerToken string) (model.LoginResult, error) {
	body := map[string]string{"provider": provider, "token": providerToken}
	var result model.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/oauth/login", body, &result); err != nil {
		return model.LoginResult{}, err
	}
	return result, nil
}

// Profile fetches the signed-in shopper's account view.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/members/me", nil, &profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile edits the shopper's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodPatch, "/api/v1/members/me", update, &profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}
