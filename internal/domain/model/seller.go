package model

import "time"

// SellerRequestStatus mirrors the backend's seller application states.
type SellerRequestStatus string

const (
	SellerRequestPending  SellerRequestStatus = "PENDING"
	SellerRequestApproved SellerRequestStatus = "APPROVED"
	SellerRequestRejected SellerRequestStatus = "REJECTED"
)

// SellerRequest is an application to open a market, reviewed by admins.
type SellerRequest struct {
	ID          int64               `json:"id"`
	MemberID    int64               `json:"memberId"`
	MarketName  string              `json:"marketName"`
	Description string              `json:"description,omitempty"`
	Status      SellerRequestStatus `json:"status"`
	RequestedAt time.Time           `json:"requestedAt"`
}

// SellerRequestCreate files a new seller application.
type SellerRequestCreate struct {
	MarketName  string `json:"marketName"`
	Description string `json:"description,omitempty"`
}

// SellerDashboard is the back-office summary for a seller.
type SellerDashboard struct {
	MarketID      int64 `json:"marketId"`
	ProductCount  int   `json:"productCount"`
	PendingOrders int   `json:"pendingOrders"`
	MonthlySales  int64 `json:"monthlySales"`
}

// SellerProductUpsert creates or updates a seller's product. Image bytes
// travel separately as a multipart part.
type SellerProductUpsert struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	CategoryID  int64  `json:"categoryId"`
	Description string `json:"description,omitempty"`
}

// Settlement is a seller payout entry.
type Settlement struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	SettledAt time.Time `json:"settledAt"`
}
