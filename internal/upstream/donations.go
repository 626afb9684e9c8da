package upstream

import (
	"context"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// DonationAccount fetches the shopper's donation summary.
func (c *Client) DonationAccount(ctx context.Context) (model.DonationAccount, error) {
	var account model.DonationAccount
	if err := c.do(ctx, http.MethodGet, "/api/v1/donations/account", nil, &account); err != nil {
		return model.DonationAccount{}, err
	}
	return account, nil
}

// Donations lists the shopper's donation history.
func (c *Client) Donations(ctx context.Context) ([]model.Donation, error) {
	var donations []model.Donation
	if err := c.do(ctx, http.MethodGet, "/api/v1/donations", nil, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// Donate donates wallet points to a campaign.
func (c *Client) Donate(ctx context.Context, req model.DonationRequest) (model.Donation, error) {
	var donation model.Donation
	if err := c.do(ctx, http.MethodPost, "/api/v1/donations", req, &donation); err != nil {
		return model.Donation{}, err
	}
	return donation, nil
}
