package wallet

import (
	"context"
	"fmt"

	"walletpool/internal/constant"
	"walletpool/internal/model"
	"walletpool/internal/svc"
	"walletpool/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type CreateLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewCreateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateLogic {
	return &CreateLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// CreateWallets generates req.Count wallets on req.Chain, aliases them
// sequentially after the existing registry count, and persists the whole
// batch in one registry write. Any keygen failure aborts before anything is
// persisted, so alias numbering never desynchronizes.
func (l *CreateLogic) CreateWallets(req *types.CreateWalletsReq) (resp *types.CreateWalletsResp, err error) {
	l.Infof("--- 开始处理 /wallet/create 请求, chain: %s, count: %d ---", req.Chain, req.Count)

	if req.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", req.Count)
	}

	capability, err := l.svcCtx.Chains.ForChain(req.Chain)
	if err != nil {
		return nil, err
	}

	existing, err := l.svcCtx.Registry.Count(l.ctx, req.Chain)
	if err != nil {
		return nil, fmt.Errorf("failed to count wallets for chain %s: %v", req.Chain, err)
	}
	l.Infof("链 %s 注册表中已有 %d 个钱包, 新钱包从 %s%d 开始编号", req.Chain, existing, constant.WalletAliasPrefix, existing)

	wallets := make([]model.Wallet, 0, req.Count)
	addresses := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		alias := fmt.Sprintf("%s%d", constant.WalletAliasPrefix, existing+i)
		w, createErr := capability.CreateWallet(alias)
		if createErr != nil {
			// 生成失败直接中止，避免别名编号出现空洞
			l.Errorf("生成钱包 %s 失败: %v", alias, createErr)
			return nil, fmt.Errorf("failed to create wallet %s on %s: %v", alias, req.Chain, createErr)
		}
		wallets = append(wallets, w)
		addresses = append(addresses, w.PublicKey)
		l.Infof("✅ 钱包 %s 生成成功: %s", alias, w.PublicKey)
	}

	if err := l.svcCtx.Registry.Add(l.ctx, req.Chain, wallets...); err != nil {
		return nil, fmt.Errorf("failed to persist wallets for chain %s: %v", req.Chain, err)
	}

	l.Infof("--- /wallet/create 请求处理完成, 新建 %d 个钱包 ---", len(wallets))
	return &types.CreateWalletsResp{
		Chain:     req.Chain,
		Created:   len(wallets),
		Total:     existing + len(wallets),
		Addresses: addresses,
	}, nil
}
