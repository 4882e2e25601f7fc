package types

// CreateWalletsReq defines the request body for creating a batch of wallets.
// 新钱包会按注册表中已有的数量顺序编号命名
type CreateWalletsReq struct {
	// The chain to create wallets on.
	Chain string `json:"chain"`
	// How many wallets to create.
	Count int `json:"count"`
}

// CreateWalletsResp defines the response body for a successful batch creation.
type CreateWalletsResp struct {
	Chain string `json:"chain"`
	// 本次创建的钱包数量
	Created int `json:"created"`
	// 创建后该链注册表中的钱包总数
	Total int `json:"total"`
	// The public addresses of the newly created wallets, in alias order.
	Addresses []string `json:"addresses"`
}

// BalancesReq defines the query parameters for a pool balance report.
type BalancesReq struct {
	Chain string `form:"chain"`
}

// BalancesResp is the aggregate balance report for one chain's pool.
type BalancesResp struct {
	Chain       string `json:"chain"`
	WalletCount int    `json:"wallet_count"`
	// TotalBalance sums every successfully observed balance, in smallest units.
	TotalBalance string `json:"total_balance"`
	// 余额恰好为 0 的钱包数量（查询失败的不计入）
	ZeroBalanceCount int `json:"zero_balance_count"`
	// How many balance queries failed.
	FailedCount int `json:"failed_count"`
	// FunderBalance is the funder wallet's balance in smallest units, or empty
	// if the query failed.
	FunderBalance string `json:"funder_balance,omitempty"`
}
