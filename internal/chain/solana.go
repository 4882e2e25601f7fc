package chain

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"walletpool/internal/config"
	"walletpool/internal/model"

	solanaClient "github.com/blocto/solana-go-sdk/client"
	solanaCommon "github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/rpc"
	solanaTypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	// solanaTransferFee is the flat fee for a single-signature transfer,
	// in lamports.
	solanaTransferFee = 5000
	// solanaConfirmTimeout bounds the signature-status wait for one transfer.
	solanaConfirmTimeout = 90 * time.Second
)

// solanaCapability implements Capability for Solana-style chains. Addresses
// are base58 public keys; private keys are hex-encoded ed25519 material, the
// same encoding the EVM side uses for its secrets.
type solanaCapability struct {
	conf      config.ChainConf
	client    *solanaClient.Client
	funder    model.Wallet
	funderAcc solanaTypes.Account
}

// newSolanaCapability eagerly validates the funder secret so a broken key
// surfaces at startup instead of mid-batch.
func newSolanaCapability(conf config.ChainConf, funderKeyHex string) (*solanaCapability, error) {
	if funderKeyHex == "" {
		return nil, fmt.Errorf("funder private key for chain %s is not set", conf.Name)
	}
	keyBytes, err := hex.DecodeString(funderKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid funder private key for chain %s: %v", conf.Name, err)
	}
	funderAcc, err := solanaTypes.AccountFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid funder private key for chain %s: %v", conf.Name, err)
	}

	return &solanaCapability{
		conf:      conf,
		client:    solanaClient.NewClient(conf.RpcUrl),
		funderAcc: funderAcc,
		funder: model.Wallet{
			PrivateKey: funderKeyHex,
			PublicKey:  funderAcc.PublicKey.ToBase58(),
			Alias:      "funder",
		},
	}, nil
}

func (c *solanaCapability) CreateWallet(alias string) (model.Wallet, error) {
	// Solana 使用 Ed25519，地址就是公钥的 Base58 编码
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to generate Solana private key: %v", err)
	}

	return model.Wallet{
		PrivateKey: hex.EncodeToString(privateKey),
		PublicKey:  base58.Encode(publicKey),
		Alias:      alias,
	}, nil
}

func (c *solanaCapability) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	balance, err := c.client.GetBalance(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s on %s: %v", address, c.conf.Name, err)
	}
	return new(big.Int).SetUint64(balance), nil
}

func (c *solanaCapability) FundWallet(ctx context.Context, amount string, funder model.Wallet, recipient string) (TransactionResult, error) {
	lamports, err := c.ToUnits(amount)
	if err != nil {
		return TransactionResult{}, err
	}

	fromAccount, err := accountFromHex(funder.PrivateKey)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("invalid funder private key: %v", err)
	}

	return c.transfer(ctx, fromAccount, recipient, lamports.Uint64())
}

func (c *solanaCapability) DrainWallet(ctx context.Context, recipient string, wallet model.Wallet) (TransactionResult, error) {
	l := logx.WithContext(ctx)

	fromAccount, err := accountFromHex(wallet.PrivateKey)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("invalid private key for wallet %s", wallet.PublicKey)
	}

	balance, err := c.client.GetBalance(ctx, wallet.PublicKey)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to get balance of %s on %s: %v", wallet.PublicKey, c.conf.Name, err)
	}
	if balance == 0 {
		return TransactionResult{Successful: false, Reason: ReasonZeroBalance}, nil
	}

	// Solana 单签名转账收取固定手续费
	if balance <= solanaTransferFee {
		return TransactionResult{Successful: false, Reason: ReasonInsufficientFee}, nil
	}
	amountToSend := balance - solanaTransferFee

	l.Infof("清空钱包 %s: balance=%d, fee=%d, send=%d", wallet.Alias, balance, solanaTransferFee, amountToSend)
	return c.transfer(ctx, fromAccount, recipient, amountToSend)
}

func (c *solanaCapability) FunderWallet() model.Wallet {
	return c.funder
}

func (c *solanaCapability) ToUnits(amount string) (*big.Int, error) {
	return toSmallestUnit(amount, c.conf.Decimals)
}

// transfer submits a system-program transfer and waits for its signature to
// reach confirmed commitment.
func (c *solanaCapability) transfer(ctx context.Context, from solanaTypes.Account, recipient string, lamports uint64) (TransactionResult, error) {
	l := logx.WithContext(ctx)

	latest, err := c.client.GetLatestBlockhash(ctx)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to get latest blockhash: %v", err)
	}

	tx, err := solanaTypes.NewTransaction(solanaTypes.NewTransactionParam{
		Message: solanaTypes.NewMessage(solanaTypes.NewMessageParam{
			FeePayer:        from.PublicKey,
			RecentBlockhash: latest.Blockhash,
			Instructions: []solanaTypes.Instruction{
				system.Transfer(system.TransferParam{
					From:   from.PublicKey,
					To:     solanaCommon.PublicKeyFromString(recipient),
					Amount: lamports,
				}),
			},
		}),
		Signers: []solanaTypes.Account{from},
	})
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to create transfer transaction: %v", err)
	}

	sig, err := c.client.SendTransaction(ctx, tx)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to send transaction: %v", err)
	}
	l.Infof("交易已发送: %s, 等待确认...", sig)

	return c.waitForConfirmation(ctx, sig)
}

// waitForConfirmation polls the signature status until it is confirmed,
// finalized, or rejected on chain.
func (c *solanaCapability) waitForConfirmation(ctx context.Context, sig string) (TransactionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, solanaConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return TransactionResult{}, fmt.Errorf("timed out waiting for transaction %s: %v", sig, ctx.Err())
		case <-ticker.C:
			status, err := c.client.GetSignatureStatus(ctx, sig)
			if err != nil {
				return TransactionResult{}, fmt.Errorf("failed to get status of %s: %v", sig, err)
			}
			if status == nil {
				// 交易尚未被节点观察到，继续等待
				continue
			}
			if status.Err != nil {
				return TransactionResult{Hash: sig, Successful: false, Reason: fmt.Sprintf("transaction rejected on chain: %v", status.Err)}, nil
			}
			if status.ConfirmationStatus != nil &&
				(*status.ConfirmationStatus == rpc.CommitmentConfirmed || *status.ConfirmationStatus == rpc.CommitmentFinalized) {
				return TransactionResult{Hash: sig, Successful: true}, nil
			}
		}
	}
}

// accountFromHex rebuilds a Solana account from our hex private key encoding.
func accountFromHex(privateKeyHex string) (solanaTypes.Account, error) {
	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return solanaTypes.Account{}, err
	}
	return solanaTypes.AccountFromBytes(keyBytes)
}
