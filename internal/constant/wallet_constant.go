package constant

type ChainType string

const (
	ChainTypeEVM    ChainType = "evm"
	ChainTypeSolana ChainType = "solana"
	// ChainTypeBTC ChainType = "btc" // Example for future support
)

// SupportedChainTypes lists all chain families a capability exists for.
var SupportedChainTypes = []ChainType{
	ChainTypeEVM,
	ChainTypeSolana,
}

// IsChainTypeSupported checks if a given chain family tag has a capability.
func IsChainTypeSupported(chainType string) bool {
	for _, supported := range SupportedChainTypes {
		if string(supported) == chainType {
			return true
		}
	}
	return false
}

// Funder secrets are read from the process environment, one per chain family.
const (
	EnvEVMFunderKey    = "EVM_FUNDER_PRIVATE_KEY"
	EnvSolanaFunderKey = "SOLANA_FUNDER_PRIVATE_KEY"
)

// WalletAliasPrefix is the prefix for generated wallet aliases; the suffix is
// the wallet's position in the chain's registry at creation time.
const WalletAliasPrefix = "wallet-"

// DrainBatchSize caps the number of drain transfers in flight at once.
const DrainBatchSize = 20
