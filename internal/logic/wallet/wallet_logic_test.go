package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"sync"
	"testing"

	"walletpool/internal/chain"
	"walletpool/internal/config"
	"walletpool/internal/model"
	"walletpool/internal/svc"
	"walletpool/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCapability is an in-memory Capability for orchestrator tests.
type fakeCapability struct {
	mu  sync.Mutex
	seq int
	// failAfter makes CreateWallet fail once this many wallets were created.
	failAfter  int
	balances   map[string]*big.Int
	balanceErr map[string]error
	funder     model.Wallet
}

func (f *fakeCapability) CreateWallet(alias string) (model.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter > 0 && f.seq >= f.failAfter {
		return model.Wallet{}, errors.New("keygen exploded")
	}
	f.seq++
	return model.Wallet{
		PrivateKey: fmt.Sprintf("priv-%d", f.seq),
		PublicKey:  fmt.Sprintf("0xF%03d", f.seq),
		Alias:      alias,
	}, nil
}

func (f *fakeCapability) GetBalance(_ context.Context, address string) (*big.Int, error) {
	if err, ok := f.balanceErr[address]; ok {
		return nil, err
	}
	if balance, ok := f.balances[address]; ok {
		return new(big.Int).Set(balance), nil
	}
	return big.NewInt(0), nil
}

func (f *fakeCapability) FundWallet(context.Context, string, model.Wallet, string) (chain.TransactionResult, error) {
	return chain.TransactionResult{Successful: true}, nil
}

func (f *fakeCapability) DrainWallet(context.Context, string, model.Wallet) (chain.TransactionResult, error) {
	return chain.TransactionResult{Successful: true}, nil
}

func (f *fakeCapability) FunderWallet() model.Wallet {
	return f.funder
}

func (f *fakeCapability) ToUnits(amount string) (*big.Int, error) {
	units, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return units, nil
}

type fakeFactory struct {
	capability chain.Capability
}

func (f fakeFactory) ForChain(string) (chain.Capability, error) {
	return f.capability, nil
}

func newTestSvcCtx(t *testing.T, capability chain.Capability) *svc.ServiceContext {
	t.Helper()
	return &svc.ServiceContext{
		Config:   config.Config{},
		Registry: model.NewFileRegistry(filepath.Join(t.TempDir(), "wallets.json")),
		Chains:   fakeFactory{capability: capability},
	}
}

func TestCreateWalletsNumbering(t *testing.T) {
	ctx := context.Background()
	capability := &fakeCapability{}
	svcCtx := newTestSvcCtx(t, capability)

	// 链上已有 3 个钱包
	require.NoError(t, svcCtx.Registry.Add(ctx, "BSC-TestNet",
		model.Wallet{PrivateKey: "k0", PublicKey: "0xA", Alias: "wallet-0"},
		model.Wallet{PrivateKey: "k1", PublicKey: "0xB", Alias: "wallet-1"},
		model.Wallet{PrivateKey: "k2", PublicKey: "0xC", Alias: "wallet-2"},
	))

	resp, err := NewCreateLogic(ctx, svcCtx).CreateWallets(&types.CreateWalletsReq{Chain: "BSC-TestNet", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 5, resp.Total)

	wallets, err := svcCtx.Registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	require.Len(t, wallets, 5)
	assert.Equal(t, "wallet-3", wallets[3].Alias)
	assert.Equal(t, "wallet-4", wallets[4].Alias)
}

func TestCreateWalletsKeygenFailureAbortsWholeBatch(t *testing.T) {
	ctx := context.Background()
	capability := &fakeCapability{failAfter: 2}
	svcCtx := newTestSvcCtx(t, capability)

	_, err := NewCreateLogic(ctx, svcCtx).CreateWallets(&types.CreateWalletsReq{Chain: "BSC-TestNet", Count: 5})
	require.Error(t, err)

	// 失败时整批放弃，已生成的钱包也不落库
	count, err := svcCtx.Registry.Count(ctx, "BSC-TestNet")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateWalletsRejectsNonPositiveCount(t *testing.T) {
	ctx := context.Background()
	svcCtx := newTestSvcCtx(t, &fakeCapability{})

	_, err := NewCreateLogic(ctx, svcCtx).CreateWallets(&types.CreateWalletsReq{Chain: "BSC-TestNet", Count: 0})
	assert.Error(t, err)
}

func TestBalancesAggregation(t *testing.T) {
	ctx := context.Background()
	capability := &fakeCapability{
		balances: map[string]*big.Int{
			"0xA": big.NewInt(0),
			"0xB": big.NewInt(5),
			"0xC": big.NewInt(0),
			"0xD": big.NewInt(10),
			"0xFUNDER": big.NewInt(100),
		},
		balanceErr: map[string]error{
			"0xE": errors.New("rpc down"),
		},
		funder: model.Wallet{PublicKey: "0xFUNDER", Alias: "funder"},
	}
	svcCtx := newTestSvcCtx(t, capability)

	require.NoError(t, svcCtx.Registry.Add(ctx, "BSC-TestNet",
		model.Wallet{PrivateKey: "k", PublicKey: "0xA", Alias: "wallet-0"},
		model.Wallet{PrivateKey: "k", PublicKey: "0xB", Alias: "wallet-1"},
		model.Wallet{PrivateKey: "k", PublicKey: "0xC", Alias: "wallet-2"},
		model.Wallet{PrivateKey: "k", PublicKey: "0xD", Alias: "wallet-3"},
		model.Wallet{PrivateKey: "k", PublicKey: "0xE", Alias: "wallet-4"},
	))

	resp, err := NewBalanceLogic(ctx, svcCtx).Balances(&types.BalancesReq{Chain: "BSC-TestNet"})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.WalletCount)
	// 查询失败的钱包不计入总额，也不算零余额
	assert.Equal(t, "15", resp.TotalBalance)
	assert.Equal(t, 2, resp.ZeroBalanceCount)
	assert.Equal(t, 1, resp.FailedCount)
	assert.Equal(t, "100", resp.FunderBalance)
}

func TestBalancesEmptyPool(t *testing.T) {
	ctx := context.Background()
	capability := &fakeCapability{funder: model.Wallet{PublicKey: "0xFUNDER"}}
	svcCtx := newTestSvcCtx(t, capability)

	resp, err := NewBalanceLogic(ctx, svcCtx).Balances(&types.BalancesReq{Chain: "BSC-TestNet"})
	require.NoError(t, err)
	assert.Zero(t, resp.WalletCount)
	assert.Equal(t, "0", resp.TotalBalance)
}
