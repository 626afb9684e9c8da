package model

import "time"

// Coupon is a discount voucher owned by the shopper.
type Coupon struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DiscountRate int       `json:"discountRate,omitempty"` // percent
	DiscountAmt  int64     `json:"discountAmount,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Used         bool      `json:"used"`
}

// CouponRedeem redeems a coupon by its printed code.
type CouponRedeem struct {
	Code string `json:"code"`
}
