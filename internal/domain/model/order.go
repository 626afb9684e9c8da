package model

import "time"

// OrderStatus mirrors the backend's order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// OrderLine is one product within an order.
type OrderLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Order is a placed order.
type Order struct {
	ID         int64       `json:"id"`
	Status     OrderStatus `json:"status"`
	Lines      []OrderLine `json:"lines"`
	TotalPrice int64       `json:"totalPrice"`
	Address    string      `json:"address"`
	OrderedAt  time.Time   `json:"orderedAt"`
}

// OrderRequest places an order from cart lines. IdempotencyKey lets the
// backend deduplicate retried submissions.
type OrderRequest struct {
	CartItemIDs    []int64 `json:"cartItemIds"`
	Address        string  `json:"address"`
	CouponID       int64   `json:"couponId,omitempty"`
	UsePoints      int64   `json:"usePoints,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

// PaymentResult is the relay of a payment confirmation page.
type PaymentResult struct {
	OrderID   int64  `json:"orderId"`
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message,omitempty"`
}
