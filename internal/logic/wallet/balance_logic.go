package wallet

import (
	"context"
	"math/big"

	"walletpool/internal/svc"
	"walletpool/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type BalanceLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewBalanceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BalanceLogic {
	return &BalanceLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Balances queries every registered wallet on req.Chain sequentially and
// aggregates a pool total. A failed query is logged and excluded from the
// total; only a successfully observed balance of exactly 0 counts toward the
// zero-balance bucket. The registry is not mutated.
func (l *BalanceLogic) Balances(req *types.BalancesReq) (resp *types.BalancesResp, err error) {
	l.Infof("--- 开始处理 /wallet/balances 请求, chain: %s ---", req.Chain)

	capability, err := l.svcCtx.Chains.ForChain(req.Chain)
	if err != nil {
		return nil, err
	}

	wallets, err := l.svcCtx.Registry.GetWallets(l.ctx, req.Chain)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	zeroCount := 0
	failedCount := 0
	for _, w := range wallets {
		balance, queryErr := capability.GetBalance(l.ctx, w.PublicKey)
		if queryErr != nil {
			// 单个钱包查询失败不中断，余额按未知处理
			l.Errorf("查询钱包 %s (%s) 余额失败: %v", w.Alias, w.PublicKey, queryErr)
			failedCount++
			continue
		}
		total.Add(total, balance)
		if balance.Sign() == 0 {
			zeroCount++
		}
		l.Infof("钱包 %s: %s", w.Alias, balance.String())
	}

	resp = &types.BalancesResp{
		Chain:            req.Chain,
		WalletCount:      len(wallets),
		TotalBalance:     total.String(),
		ZeroBalanceCount: zeroCount,
		FailedCount:      failedCount,
	}

	funder := capability.FunderWallet()
	funderBalance, funderErr := capability.GetBalance(l.ctx, funder.PublicKey)
	if funderErr != nil {
		l.Errorf("查询 funder 钱包余额失败: %v", funderErr)
	} else {
		resp.FunderBalance = funderBalance.String()
	}

	l.Infof("--- /wallet/balances 请求处理完成, total=%s, zero=%d, failed=%d ---",
		resp.TotalBalance, zeroCount, failedCount)
	return resp, nil
}
