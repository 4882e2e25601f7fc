package transaction

import (
	"context"
	"fmt"
	"math/big"

	"walletpool/internal/svc"
	"walletpool/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type FundLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewFundLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FundLogic {
	return &FundLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// FundWallets tops up every under-threshold wallet on req.Chain from the
// funder. Before any transfer it verifies the funder can cover the whole
// batch; afterwards each wallet is processed strictly sequentially so
// consecutive transactions from the single funder account never race on the
// nonce. Per-wallet failures are counted and do not abort the run.
func (l *FundLogic) FundWallets(req *types.FundWalletsReq) (resp *types.FundWalletsResp, err error) {
	l.Infof("--- 开始处理 /wallet/fund 请求, chain: %s, amount: %s, min_balance: %s ---",
		req.Chain, req.Amount, req.MinBalance)

	capability, err := l.svcCtx.Chains.ForChain(req.Chain)
	if err != nil {
		return nil, err
	}

	wallets, err := l.svcCtx.Registry.GetWallets(l.ctx, req.Chain)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		l.Infof("链 %s 注册表为空, 无需充值", req.Chain)
		return &types.FundWalletsResp{Chain: req.Chain}, nil
	}

	amountPerWallet, err := capability.ToUnits(req.Amount)
	if err != nil {
		return nil, err
	}
	minBalance, err := capability.ToUnits(req.MinBalance)
	if err != nil {
		return nil, err
	}

	// 全量预检：funder 余额必须覆盖整批，避免中途断粮造成半批充值
	funder := capability.FunderWallet()
	funderBalance, err := capability.GetBalance(l.ctx, funder.PublicKey)
	if err != nil {
		return nil, err
	}
	required := new(big.Int).Mul(amountPerWallet, big.NewInt(int64(len(wallets))))
	if required.Cmp(funderBalance) > 0 {
		return nil, fmt.Errorf("insufficient funder balance on %s: required %s, available %s",
			req.Chain, required.String(), funderBalance.String())
	}
	l.Infof("预检通过: required=%s, funder balance=%s", required.String(), funderBalance.String())

	funded, skipped, failed := 0, 0, 0
	for _, w := range wallets {
		balance, queryErr := capability.GetBalance(l.ctx, w.PublicKey)
		if queryErr != nil {
			l.Errorf("查询钱包 %s 余额失败: %v", w.Alias, queryErr)
			failed++
			continue
		}
		if balance.Cmp(minBalance) >= 0 {
			l.Infof("钱包 %s 余额已达标 (%s), 跳过", w.Alias, balance.String())
			skipped++
			continue
		}

		result, fundErr := capability.FundWallet(l.ctx, req.Amount, funder, w.PublicKey)
		if fundErr != nil {
			l.Errorf("给钱包 %s 充值失败: %v", w.Alias, fundErr)
			failed++
			continue
		}
		if !result.Successful {
			l.Errorf("给钱包 %s 充值未成功: %s", w.Alias, result.Reason)
			failed++
			continue
		}
		l.Infof("✅ 钱包 %s 充值成功, tx: %s", w.Alias, result.Hash)
		funded++
	}

	l.Infof("--- /wallet/fund 请求处理完成, funded=%d, skipped=%d, failed=%d ---", funded, skipped, failed)
	return &types.FundWalletsResp{
		Chain:   req.Chain,
		Funded:  funded,
		Skipped: skipped,
		Failed:  failed,
	}, nil
}
