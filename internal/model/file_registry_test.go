package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (WalletRegistry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.json")
	return NewFileRegistry(path), path
}

func TestFileRegistryAddAppends(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	err := registry.Add(ctx, "BSC-TestNet",
		Wallet{PrivateKey: "k0", PublicKey: "0xA", Alias: "wallet-0"},
		Wallet{PrivateKey: "k1", PublicKey: "0xB", Alias: "wallet-1"},
	)
	require.NoError(t, err)

	wallets, err := registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "0xA", wallets[0].PublicKey)
	assert.Equal(t, "0xB", wallets[1].PublicKey)

	count, err := registry.Count(ctx, "BSC-TestNet")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFileRegistryUpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	require.NoError(t, registry.Add(ctx, "BSC-TestNet",
		Wallet{PrivateKey: "k0", PublicKey: "0xA", Alias: "wallet-0"},
		Wallet{PrivateKey: "k1", PublicKey: "0xB", Alias: "wallet-1"},
		Wallet{PrivateKey: "k2", PublicKey: "0xC", Alias: "wallet-2"},
	))

	// 重复公钥只替换原位置的条目，不追加
	require.NoError(t, registry.Add(ctx, "BSC-TestNet",
		Wallet{PrivateKey: "k1", PublicKey: "0xB", Alias: "renamed"},
	))

	wallets, err := registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, []string{"0xA", "0xB", "0xC"},
		[]string{wallets[0].PublicKey, wallets[1].PublicKey, wallets[2].PublicKey})
	assert.Equal(t, "renamed", wallets[1].Alias)

	// 新公钥追加到末尾
	require.NoError(t, registry.Add(ctx, "BSC-TestNet",
		Wallet{PrivateKey: "k3", PublicKey: "0xD", Alias: "wallet-3"},
	))
	count, err := registry.Count(ctx, "BSC-TestNet")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestFileRegistrySkipsEmptyPublicKey(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	require.NoError(t, registry.Add(ctx, "BSC-TestNet",
		Wallet{PrivateKey: "k0", PublicKey: "", Alias: "broken"},
		Wallet{PrivateKey: "k1", PublicKey: "0xA", Alias: "wallet-0"},
	))

	wallets, err := registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "0xA", wallets[0].PublicKey)
}

func TestFileRegistryUnknownChainIsEmpty(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	wallets, err := registry.GetWallets(ctx, "never-written")
	require.NoError(t, err)
	assert.Empty(t, wallets)

	count, err := registry.Count(ctx, "never-written")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFileRegistryCorruptFileSelfHeals(t *testing.T) {
	ctx := context.Background()
	registry, path := newTestRegistry(t)

	require.NoError(t, os.WriteFile(path, []byte("not json at all {{{"), 0o600))

	wallets, err := registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	assert.Empty(t, wallets)

	// 文件应该已经被重置为合法的空库
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))

	require.NoError(t, registry.Add(ctx, "BSC-TestNet",
		Wallet{PrivateKey: "k0", PublicKey: "0xA", Alias: "wallet-0"},
	))
	count, err := registry.Count(ctx, "BSC-TestNet")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFileRegistryMalformedChainEntryDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	registry, path := newTestRegistry(t)

	// 整体 JSON 合法，但该链的条目不是钱包列表
	require.NoError(t, os.WriteFile(path, []byte(`{"BSC-TestNet": 42, "ETH-Sepolia": [{"private_key":"k","public_key":"0xA","alias":"wallet-0"}]}`), 0o600))

	wallets, err := registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	assert.Empty(t, wallets)

	// 其他链不受影响
	others, err := registry.GetWallets(ctx, "ETH-Sepolia")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "0xA", others[0].PublicKey)
}

func TestFileRegistryChainsAreIndependent(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	require.NoError(t, registry.Add(ctx, "BSC-TestNet", Wallet{PrivateKey: "k0", PublicKey: "0xA", Alias: "wallet-0"}))
	require.NoError(t, registry.Add(ctx, "Solana-Devnet", Wallet{PrivateKey: "k1", PublicKey: "So1", Alias: "wallet-0"}))

	bsc, err := registry.GetWallets(ctx, "BSC-TestNet")
	require.NoError(t, err)
	sol, err := registry.GetWallets(ctx, "Solana-Devnet")
	require.NoError(t, err)
	assert.Len(t, bsc, 1)
	assert.Len(t, sol, 1)
	assert.Equal(t, "So1", sol[0].PublicKey)
}
