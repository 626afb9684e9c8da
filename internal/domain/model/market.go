package model

// Package model holds the data shapes exchanged with the commerce backend.
// The backend owns all business rules; these types are pass-through
// projections for the storefront.

import "time"

// Product is a storefront catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	MarketID    int64     `json:"marketId"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Category is a product category node.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parentId,omitempty"`
}

// Market is a seller's shop front.
type Market struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ProductPage is a paginated product listing.
type ProductPage struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	TotalCount int64     `json:"totalCount"`
}

// ProductQuery narrows a catalog listing.
type ProductQuery struct {
	Keyword    string
	CategoryID int64
	MarketID   int64
	Page       int
	Size       int
}
