package chain

import (
	"fmt"
	"math/big"
)

// toSmallestUnit converts a decimal amount in human units (e.g., "0.05") to
// the chain's smallest unit using its configured decimal exponent. Fractions
// below the smallest unit are truncated.
func toSmallestUnit(amount string, decimals int) (*big.Int, error) {
	rat, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if rat.Sign() < 0 {
		return nil, fmt.Errorf("amount %q must not be negative", amount)
	}

	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat.Mul(rat, new(big.Rat).SetInt(exp))

	// 截断到最小单位
	return new(big.Int).Quo(rat.Num(), rat.Denom()), nil
}
