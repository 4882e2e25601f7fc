package chain

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"walletpool/internal/config"
	"walletpool/internal/model"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	// 原生转账的标准 gas 上限
	evmTransferGasLimit = 21000
	// evmConfirmTimeout bounds the receipt wait for one transfer.
	evmConfirmTimeout = 2 * time.Minute
)

// evmCapability implements Capability for EVM-compatible chains. Private keys
// are hex-encoded secp256k1 material; addresses are 0x-hex.
type evmCapability struct {
	conf   config.ChainConf
	client *ethclient.Client
	funder model.Wallet
}

// newEVMCapability dials the chain's RPC endpoint and eagerly validates the
// funder secret, so a broken key surfaces at startup instead of mid-batch.
func newEVMCapability(conf config.ChainConf, funderKeyHex string) (*evmCapability, error) {
	if funderKeyHex == "" {
		return nil, fmt.Errorf("funder private key for chain %s is not set", conf.Name)
	}
	funderKey, err := crypto.HexToECDSA(funderKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid funder private key for chain %s: %v", conf.Name, err)
	}

	client, err := ethclient.Dial(conf.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain %s: %v", conf.Name, err)
	}

	return &evmCapability{
		conf:   conf,
		client: client,
		funder: model.Wallet{
			PrivateKey: funderKeyHex,
			PublicKey:  crypto.PubkeyToAddress(funderKey.PublicKey).Hex(),
			Alias:      "funder",
		},
	}, nil
}

func (c *evmCapability) CreateWallet(alias string) (model.Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to generate EVM private key: %v", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return model.Wallet{}, errors.New("failed to cast public key to ECDSA")
	}

	return model.Wallet{
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(privateKey)),
		PublicKey:  crypto.PubkeyToAddress(*publicKey).Hex(),
		Alias:      alias,
	}, nil
}

func (c *evmCapability) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	balance, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s on %s: %v", address, c.conf.Name, err)
	}
	return balance, nil
}

func (c *evmCapability) FundWallet(ctx context.Context, amount string, funder model.Wallet, recipient string) (TransactionResult, error) {
	l := logx.WithContext(ctx)

	wei, err := c.ToUnits(amount)
	if err != nil {
		return TransactionResult{}, err
	}

	privateKey, err := crypto.HexToECDSA(funder.PrivateKey)
	if err != nil {
		return TransactionResult{}, errors.New("invalid funder private key")
	}

	toAddr := common.HexToAddress(recipient)
	gasLimit, gasPrice, err := c.estimateTransferGas(ctx, common.HexToAddress(funder.PublicKey), toAddr, wei)
	if err != nil {
		return TransactionResult{}, err
	}
	l.Infof("Gas 估算结果: gasLimit=%d, gasPrice=%s", gasLimit, gasPrice.String())

	return c.transfer(ctx, privateKey, toAddr, wei, gasLimit, gasPrice)
}

func (c *evmCapability) DrainWallet(ctx context.Context, recipient string, wallet model.Wallet) (TransactionResult, error) {
	l := logx.WithContext(ctx)

	privateKey, err := crypto.HexToECDSA(wallet.PrivateKey)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("invalid private key for wallet %s", wallet.PublicKey)
	}

	balance, err := c.GetBalance(ctx, wallet.PublicKey)
	if err != nil {
		return TransactionResult{}, err
	}
	if balance.Sign() == 0 {
		return TransactionResult{Successful: false, Reason: ReasonZeroBalance}, nil
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to get gas price on %s: %v", c.conf.Name, err)
	}

	// 全额转出：手续费按标准转账 gas 计算，金额 = 余额 - 手续费
	fee := new(big.Int).Mul(gasPrice, big.NewInt(evmTransferGasLimit))
	amountToSend := new(big.Int).Sub(balance, fee)
	if amountToSend.Sign() <= 0 {
		return TransactionResult{Successful: false, Reason: ReasonInsufficientFee}, nil
	}

	l.Infof("清空钱包 %s: balance=%s, fee=%s, send=%s", wallet.Alias, balance, fee, amountToSend)
	return c.transfer(ctx, privateKey, common.HexToAddress(recipient), amountToSend, evmTransferGasLimit, gasPrice)
}

func (c *evmCapability) FunderWallet() model.Wallet {
	return c.funder
}

func (c *evmCapability) ToUnits(amount string) (*big.Int, error) {
	return toSmallestUnit(amount, c.conf.Decimals)
}

// transfer builds, signs and sends a legacy native transfer, then waits for
// its receipt. Submission errors are fatal; a reverted receipt is a soft
// failure.
func (c *evmCapability) transfer(ctx context.Context, privateKey *ecdsa.PrivateKey, to common.Address, value *big.Int, gasLimit uint64, gasPrice *big.Int) (TransactionResult, error) {
	l := logx.WithContext(ctx)

	fromAddr := crypto.PubkeyToAddress(privateKey.PublicKey)
	nonce, err := c.client.PendingNonceAt(ctx, fromAddr)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to get nonce: %v", err)
	}

	tx := evmTypes.NewTx(&evmTypes.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
	})

	signedTx, err := evmTypes.SignTx(tx, evmTypes.NewEIP155Signer(big.NewInt(c.conf.ChainId)), privateKey)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("failed to sign transaction: %v", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return TransactionResult{}, fmt.Errorf("failed to send transaction: %v", err)
	}

	txHash := signedTx.Hash()
	l.Infof("交易已发送: %s, 等待确认...", txHash.Hex())

	receipt, err := c.waitForReceipt(ctx, txHash)
	if err != nil {
		return TransactionResult{}, err
	}
	if receipt.Status != evmTypes.ReceiptStatusSuccessful {
		return TransactionResult{Hash: txHash.Hex(), Successful: false, Reason: "transaction reverted on chain"}, nil
	}
	return TransactionResult{Hash: txHash.Hex(), Successful: true}, nil
}

// waitForReceipt polls until the transaction is mined or the confirmation
// timeout elapses.
func (c *evmCapability) waitForReceipt(ctx context.Context, txHash common.Hash) (*evmTypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, evmConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for transaction %s: %v", txHash.Hex(), ctx.Err())
		case <-ticker.C:
			receipt, err := c.client.TransactionReceipt(ctx, txHash)
			if err != nil {
				if errors.Is(err, ethereum.NotFound) {
					// 交易尚未确认，继续等待
					continue
				}
				return nil, err
			}
			return receipt, nil
		}
	}
}

// estimateTransferGas mirrors the node's estimate with a floor at the
// standard transfer cost plus a small buffer.
func (c *evmCapability) estimateTransferGas(ctx context.Context, from, to common.Address, value *big.Int) (uint64, *big.Int, error) {
	l := logx.WithContext(ctx)

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get gas price: %v", err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
	})
	if err != nil {
		l.Infof("Gas 估算失败，使用默认值: %v", err)
		gasLimit = evmTransferGasLimit
	}
	if gasLimit < evmTransferGasLimit {
		gasLimit = evmTransferGasLimit
	}

	// 增加缓冲
	gasLimit = gasLimit * 110 / 100

	return gasLimit, gasPrice, nil
}
