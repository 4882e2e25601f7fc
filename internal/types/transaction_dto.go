package types

// FundWalletsReq defines the request body for topping up a chain's pool from
// the funder wallet.
type FundWalletsReq struct {
	Chain string `json:"chain"`
	// Amount to send to each under-threshold wallet, in human units
	// (e.g., "0.05" BNB / SOL).
	Amount string `json:"amount"`
	// MinBalance is the threshold in human units; wallets already at or above
	// it are skipped.
	MinBalance string `json:"min_balance"`
}

// FundWalletsResp summarizes a funding run.
type FundWalletsResp struct {
	Chain string `json:"chain"`
	// 成功转账的钱包数
	Funded int `json:"funded"`
	// 余额已达标而跳过的钱包数
	Skipped int `json:"skipped"`
	// How many wallets failed to fund (balance query or transfer failure).
	Failed int `json:"failed"`
}

// DrainWalletsReq defines the request body for sweeping a chain's pool back
// into the funder wallet.
type DrainWalletsReq struct {
	Chain string `json:"chain"`
}

// DrainWalletsResp summarizes a drain sweep, one bucket per outcome class.
type DrainWalletsResp struct {
	Chain string `json:"chain"`
	// 成功清空的钱包数
	Drained int `json:"drained"`
	// 余额为 0 而跳过的钱包数
	ZeroBalance int `json:"zero_balance"`
	// 余额不足以覆盖手续费而跳过的钱包数
	InsufficientFee int `json:"insufficient_fee"`
	// How many wallets failed with an unexpected error.
	Failed int `json:"failed"`
}
