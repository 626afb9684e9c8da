package model

import "time"

// DonationAccount is the shopper's donation summary.
type DonationAccount struct {
	TotalDonated int64 `json:"totalDonated"`
}

// Donation is one donation entry.
type Donation struct {
	ID         int64     `json:"id"`
	Campaign   string    `json:"campaign"`
	Amount     int64     `json:"amount"`
	DonatedAt  time.Time `json:"donatedAt"`
}

// DonationRequest donates points to a campaign.
type DonationRequest struct {
	Campaign string `json:"campaign"`
	Amount   int64  `json:"amount"`
}
