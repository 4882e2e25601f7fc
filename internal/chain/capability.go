package chain

import (
	"context"
	"math/big"

	"walletpool/internal/model"
)

// Soft-failure reasons reported by DrainWallet. These are routine, expected
// outcomes; anything else surfaces as an error.
const (
	ReasonZeroBalance     = "wallet balance is 0"
	ReasonInsufficientFee = "insufficient balance to cover the transfer fee"
)

// TransactionResult reports the outcome of one transfer attempt. It is never
// persisted; orchestrators consume it for aggregation and logging.
type TransactionResult struct {
	// Hash identifies the submitted transaction, when one was submitted.
	Hash string `json:"hash,omitempty"`
	// Successful is true when the transfer confirmed and was accepted on chain.
	Successful bool `json:"successful"`
	// Reason carries the human-readable cause when Successful is false.
	Reason string `json:"reason,omitempty"`
}

// Capability is the per-chain transaction surface the orchestrators depend
// on. One instance is bound to a single RPC endpoint and funder secret at
// construction time.
//
// Error discipline: transport, signing and fee-determination problems are
// returned as errors; on-chain rejection and the explicit drain policy checks
// (empty wallet, dust below the fee) come back as a TransactionResult with
// Successful=false so callers can tell routine skips from real failures.
type Capability interface {
	// CreateWallet generates a fresh keypair labeled alias. No network I/O.
	CreateWallet(alias string) (model.Wallet, error)
	// GetBalance returns address's balance in the chain's smallest unit.
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	// FundWallet transfers amount (human units) from funder to recipient and
	// waits for confirmation.
	FundWallet(ctx context.Context, amount string, funder model.Wallet, recipient string) (TransactionResult, error)
	// DrainWallet sweeps wallet's whole balance minus the transfer fee to
	// recipient and waits for confirmation.
	DrainWallet(ctx context.Context, recipient string, wallet model.Wallet) (TransactionResult, error)
	// FunderWallet returns the bound funder. No I/O.
	FunderWallet() model.Wallet
	// ToUnits converts a decimal amount in human units to the chain's
	// smallest unit.
	ToUnits(amount string) (*big.Int, error)
}
