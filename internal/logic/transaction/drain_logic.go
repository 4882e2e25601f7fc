package transaction

import (
	"context"
	"sync"

	"walletpool/internal/chain"
	"walletpool/internal/constant"
	"walletpool/internal/model"
	"walletpool/internal/svc"
	"walletpool/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type DrainLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewDrainLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DrainLogic {
	return &DrainLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// drainOutcome pairs one wallet's drain result with the error that replaced
// it, for classification after the batch resolves.
type drainOutcome struct {
	result chain.TransactionResult
	err    error
}

// DrainWallets sweeps every registered wallet on req.Chain back into the
// funder. Transfers run in batches of constant.DrainBatchSize concurrent
// calls; the next batch starts only after the current one fully resolves.
// Every per-wallet error, including transport errors, is converted into the
// failed bucket rather than aborting the sweep. The registry is not mutated.
func (l *DrainLogic) DrainWallets(req *types.DrainWalletsReq) (resp *types.DrainWalletsResp, err error) {
	l.Infof("--- 开始处理 /wallet/drain 请求, chain: %s ---", req.Chain)

	capability, err := l.svcCtx.Chains.ForChain(req.Chain)
	if err != nil {
		return nil, err
	}

	wallets, err := l.svcCtx.Registry.GetWallets(l.ctx, req.Chain)
	if err != nil {
		return nil, err
	}

	funder := capability.FunderWallet()

	// funder 自己如果被注册进了池子，排除掉，避免自转一笔白烧手续费
	targets := make([]model.Wallet, 0, len(wallets))
	for _, w := range wallets {
		if w.PublicKey == funder.PublicKey {
			l.Infof("钱包 %s 是 funder 本身, 跳过", w.Alias)
			continue
		}
		targets = append(targets, w)
	}

	resp = &types.DrainWalletsResp{Chain: req.Chain}
	for start := 0; start < len(targets); start += constant.DrainBatchSize {
		end := start + constant.DrainBatchSize
		if end > len(targets) {
			end = len(targets)
		}
		batch := targets[start:end]
		l.Infof("处理第 %d 批, 共 %d 个钱包", start/constant.DrainBatchSize+1, len(batch))

		outcomes := make([]drainOutcome, len(batch))
		var wg sync.WaitGroup
		for i, w := range batch {
			wg.Add(1)
			go func(i int, w model.Wallet) {
				defer wg.Done()
				result, drainErr := capability.DrainWallet(l.ctx, funder.PublicKey, w)
				outcomes[i] = drainOutcome{result: result, err: drainErr}
			}(i, w)
		}
		wg.Wait()

		for i, outcome := range outcomes {
			l.classify(batch[i], outcome, resp)
		}
	}

	l.Infof("--- /wallet/drain 请求处理完成, drained=%d, zero=%d, insufficient=%d, failed=%d ---",
		resp.Drained, resp.ZeroBalance, resp.InsufficientFee, resp.Failed)
	return resp, nil
}

// classify sorts one outcome into its bucket.
func (l *DrainLogic) classify(w model.Wallet, outcome drainOutcome, resp *types.DrainWalletsResp) {
	switch {
	case outcome.err != nil:
		l.Errorf("清空钱包 %s 失败: %v", w.Alias, outcome.err)
		resp.Failed++
	case outcome.result.Successful:
		l.Infof("✅ 钱包 %s 已清空, tx: %s", w.Alias, outcome.result.Hash)
		resp.Drained++
	case outcome.result.Reason == chain.ReasonZeroBalance:
		resp.ZeroBalance++
	case outcome.result.Reason == chain.ReasonInsufficientFee:
		resp.InsufficientFee++
	default:
		l.Errorf("清空钱包 %s 未成功: %s", w.Alias, outcome.result.Reason)
		resp.Failed++
	}
}
