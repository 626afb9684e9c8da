package upstream

import (
	"context"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// Coupons lists the shopper's owned coupons.
func (c *Client) Coupons(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := c.do(ctx, http.MethodGet, "/api/v1/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// RedeemCoupon claims a coupon by its printed code.
func (c *Client) RedeemCoupon(ctx context.Context, code string) (model.Coupon, error) {
	var coupon model.Coupon
	if err := c.do(ctx, http.MethodPost, "/api/v1/coupons/redeem", model.CouponRedeem{Code: code}, &coupon); err != nil {
		return model.Coupon{}, err
	}
	return coupon, nil
}
