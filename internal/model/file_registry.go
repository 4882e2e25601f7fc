package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
)

// fileRegistry persists wallet pools in a single JSON file mapping chain name
// to an ordered wallet list. Mutation goes through a process-level mutex and
// writes are atomic (temp file + rename), so a batch Add is either fully
// visible to subsequent reads or not at all.
type fileRegistry struct {
	path string
	mu   sync.Mutex
}

// NewFileRegistry creates a WalletRegistry backed by the JSON file at path.
// The file does not need to exist yet.
func NewFileRegistry(path string) WalletRegistry {
	return &fileRegistry{path: path}
}

func (r *fileRegistry) GetWallets(ctx context.Context, chain string) ([]Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return r.walletsFor(ctx, store, chain), nil
}

func (r *fileRegistry) Count(ctx context.Context, chain string) (int, error) {
	wallets, err := r.GetWallets(ctx, chain)
	if err != nil {
		return 0, err
	}
	return len(wallets), nil
}

func (r *fileRegistry) Add(ctx context.Context, chain string, wallets ...Wallet) error {
	logger := logx.WithContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.load(ctx)
	if err != nil {
		return err
	}
	existing := r.walletsFor(ctx, store, chain)

	skipped := 0
	for _, w := range wallets {
		if w.PublicKey == "" {
			// 公钥为空的钱包不允许进入注册表
			skipped++
			continue
		}
		existing = upsert(existing, w)
	}
	if skipped > 0 {
		logger.Infof("注册表跳过了 %d 个公钥为空的钱包, chain: %s", skipped, chain)
	}

	raw, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to encode wallets for chain %s: %v", chain, err)
	}
	store[chain] = raw

	return r.persist(store)
}

// upsert replaces the entry sharing w's public key in place, or appends w.
func upsert(wallets []Wallet, w Wallet) []Wallet {
	for i := range wallets {
		if wallets[i].PublicKey == w.PublicKey {
			wallets[i] = w
			return wallets
		}
	}
	return append(wallets, w)
}

// load reads the whole store. A missing file is an empty store; unparseable
// content resets the file to an empty store (self-healing) rather than
// failing the operation; any other I/O error is fatal.
func (r *fileRegistry) load(ctx context.Context) (map[string]json.RawMessage, error) {
	logger := logx.WithContext(ctx)

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet registry %s: %v", r.path, err)
	}

	var store map[string]json.RawMessage
	if err := json.Unmarshal(data, &store); err != nil || store == nil {
		// 注册表文件损坏，重置为空库继续工作
		logger.Errorf("钱包注册表 %s 内容损坏, 重置为空: %v", r.path, err)
		store = map[string]json.RawMessage{}
		if persistErr := r.persist(store); persistErr != nil {
			return nil, persistErr
		}
	}
	return store, nil
}

// walletsFor decodes one chain's list; a missing or malformed entry degrades
// to an empty list.
func (r *fileRegistry) walletsFor(ctx context.Context, store map[string]json.RawMessage, chain string) []Wallet {
	raw, ok := store[chain]
	if !ok {
		return nil
	}
	var wallets []Wallet
	if err := json.Unmarshal(raw, &wallets); err != nil {
		logx.WithContext(ctx).Errorf("链 %s 的注册表条目损坏, 按空列表处理: %v", chain, err)
		return nil
	}
	return wallets
}

func (r *fileRegistry) persist(store map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode wallet registry: %v", err)
	}

	tmp := r.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %v", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write wallet registry: %v", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace wallet registry: %v", err)
	}
	return nil
}
