package chain

import (
	"fmt"
	"os"

	"walletpool/internal/config"
	"walletpool/internal/constant"
)

// Factory resolves a chain name to its Capability.
type Factory interface {
	ForChain(name string) (Capability, error)
}

type factory struct {
	chains map[string]config.ChainConf
}

// NewFactory creates a Factory over the configured chain set.
func NewFactory(chains map[string]config.ChainConf) Factory {
	return &factory{chains: chains}
}

// ForChain looks the chain up in configuration and dispatches on its family
// tag. The funder secret comes from the family's environment variable and is
// validated during construction.
func (f *factory) ForChain(name string) (Capability, error) {
	conf, ok := f.chains[name]
	if !ok {
		return nil, fmt.Errorf("chain %q is not configured", name)
	}

	switch constant.ChainType(conf.Type) {
	case constant.ChainTypeEVM:
		return newEVMCapability(conf, os.Getenv(constant.EnvEVMFunderKey))
	case constant.ChainTypeSolana:
		return newSolanaCapability(conf, os.Getenv(constant.EnvSolanaFunderKey))
	default:
		return nil, fmt.Errorf("unsupported chain type %q for chain %s", conf.Type, name)
	}
}
