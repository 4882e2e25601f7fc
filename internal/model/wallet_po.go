package model

import "time"

// Wallet is the registry's unit of storage. PublicKey is the identity key
// within one chain's list; PrivateKey is the chain-specific encoding of the
// secret material (hex for both EVM and Solana wallets).
type Wallet struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Alias      string `json:"alias"`
}

// Wallets corresponds to the wallets table in the database (Postgres-backed
// registry). One row per (chain, public_key).
type Wallets struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Chain      string    `gorm:"column:chain;uniqueIndex:idx_chain_public_key"`
	PublicKey  string    `gorm:"column:public_key;uniqueIndex:idx_chain_public_key"`
	PrivateKey string    `gorm:"column:private_key"`
	Alias      string    `gorm:"column:alias"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName sets the gorm table name.
func (Wallets) TableName() string {
	return "wallets"
}
