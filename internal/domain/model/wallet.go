package model

import "time"

// Wallet is the shopper's point balance.
type Wallet struct {
	Balance int64 `json:"balance"`
}

// WalletTransaction is one ledger entry in the wallet history.
type WalletTransaction struct {
	ID         int64     `json:"id"`
	Amount     int64     `json:"amount"` // negative for spend
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}
