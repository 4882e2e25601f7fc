package config

import "github.com/zeromicro/go-zero/rest"

type ChainConf struct {
	Name     string `json:"Name"`
	RpcUrl   string `json:"RpcUrl"`
	ChainId  int64  `json:"ChainId,optional"`
	Explorer string `json:"Explorer,optional"`
	// Type is the chain family tag ("evm" or "solana") that selects the
	// capability implementation.
	Type string `json:"Type"`
	// Decimals is the power of ten between the chain's human unit and its
	// smallest unit (18 for wei, 9 for lamports). 单位转换只依赖这个字段，
	// 不再通过链名判断。
	Decimals int `json:"Decimals"`
	// EstimatedTransferFee is an informational hint in smallest units; the
	// capabilities compute the real fee per transfer.
	EstimatedTransferFee int64 `json:"EstimatedTransferFee,optional"`
}

type Config struct {
	rest.RestConf
	Postgres struct {
		DSN string `json:",optional"`
	}
	Registry struct {
		// Path of the JSON wallet registry file, used when no Postgres DSN
		// is configured.
		Path string `json:",default=wallets.json"`
	}
	// Chains maps a chain name (e.g., "BSC-TestNet") to its configuration.
	Chains map[string]ChainConf
}
