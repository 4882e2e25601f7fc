package model

import "context"

// WalletRegistry defines the interface for durable storage of wallet pools,
// one ordered list per chain.
type WalletRegistry interface {
	// GetWallets returns the persisted list for chain, in insertion order.
	// An unknown chain yields an empty list, never an error.
	GetWallets(ctx context.Context, chain string) ([]Wallet, error)
	// Count reports how many wallets are registered for chain.
	Count(ctx context.Context, chain string) (int, error)
	// Add upserts the given wallets into chain's list, keyed by public key:
	// an existing key is replaced in place, a new key is appended. Wallets
	// with an empty public key are skipped. The whole batch is persisted in
	// one durable write.
	Add(ctx context.Context, chain string, wallets ...Wallet) error
}
