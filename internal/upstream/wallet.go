package upstream

import (
	"context"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/domain/model"
)

// Wallet fetches the shopper's point balance.
func (c *Client) Wallet(ctx context.Context) (model.Wallet, error) {
	var wallet model.Wallet
	if err := c.do(ctx, http.MethodGet, "/api/v1/wallet", nil, &wallet); err != nil {
		return model.Wallet{}, err
	}
	return wallet, nil
}

// WalletTransactions lists the wallet ledger, newest first.
func (c *Client) WalletTransactions(ctx context.Context) ([]model.WalletTransaction, error) {
	var txs []model.WalletTransaction
	if err := c.do(ctx, http.MethodGet, "/api/v1/wallet/transactions", nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}
