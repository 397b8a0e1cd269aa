package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

const (
	// gasLimitTransfer is the fixed gas of a plain value transfer
	gasLimitTransfer = 21000
)

// evmBackend is the subset of ethclient.Client the EVM client uses
type evmBackend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// EVMClient talks to an Ethereum-compatible JSON-RPC node
type EVMClient struct {
	backend evmBackend
	chainID *big.Int
	logger  *zap.Logger
}

// DialEVM connects to the node at rpcURL
func DialEVM(ctx context.Context, rpcURL string, chainID int64, logger *zap.Logger) (*EVMClient, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}

	logger.Info("EVM client initialized",
		zap.String("rpc", rpcURL),
		zap.Int64("chain_id", chainID))

	return newEVMClient(eth, chainID, logger), nil
}

func newEVMClient(backend evmBackend, chainID int64, logger *zap.Logger) *EVMClient {
	return &EVMClient{
		backend: backend,
		chainID: big.NewInt(chainID),
		logger:  logger,
	}
}

// ValidateAddress accepts 0x-prefixed hex addresses. Mixed-case input must carry a valid EIP-55 checksum.
func (c *EVMClient) ValidateAddress(address string) error {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return errors.New("invalid EVM address format")
	}

	body := address[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if common.HexToAddress(address).Hex() != address {
			return errors.New("invalid address checksum")
		}
	}
	return nil
}

// AccountAddress returns the wallet's EVM address
func (c *EVMClient) AccountAddress(creds Credentials) (string, error) {
	if creds.Address == "" {
		return "", errors.New("wallet has no address")
	}
	return common.HexToAddress(creds.Address).Hex(), nil
}

// Balance gets the native balance in wei
func (c *EVMClient) Balance(ctx context.Context, address string) (*big.Int, error) {
	if err := c.ValidateAddress(address); err != nil {
		return nil, err
	}

	balance, err := c.backend.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// EstimateFee returns EIP-1559 fee caps, or the legacy gas price on chains without a base fee
func (c *EVMClient) EstimateFee(ctx context.Context) (*Fee, error) {
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}

	if head.BaseFee == nil {
		gasPrice, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get gas price: %w", err)
		}
		return &Fee{MaxFee: gasPrice, PriorityFee: new(big.Int).Set(gasPrice), GasLimit: gasLimitTransfer}, nil
	}

	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas tip cap: %w", err)
	}

	// leave room for the base fee doubling before inclusion
	maxFee := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)

	return &Fee{MaxFee: maxFee, PriorityFee: tip, GasLimit: gasLimitTransfer}, nil
}

// Sign builds and signs a dynamic-fee value transfer
func (c *EVMClient) Sign(ctx context.Context, transfer *Transfer) (*SignedTx, error) {
	if transfer == nil || transfer.Amount == nil || transfer.Fee == nil {
		return nil, errors.New("incomplete transfer")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(transfer.From.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	from := crypto.PubkeyToAddress(privateKey.PublicKey)
	if !strings.EqualFold(from.Hex(), transfer.From.Address) {
		return nil, errors.New("private key does not match address")
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	to := common.HexToAddress(transfer.To)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: transfer.Fee.PriorityFee,
		GasFeeCap: transfer.Fee.MaxFee,
		Gas:       transfer.Fee.GasLimit,
		To:        &to,
		Value:     transfer.Amount,
	})

	signed, err := types.SignTx(tx, types.NewLondonSigner(c.chainID), privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	return &SignedTx{From: from.Hex(), Hash: signed.Hash().Hex(), Raw: raw}, nil
}

// Broadcast sends the signed transaction
func (c *EVMClient) Broadcast(ctx context.Context, signed *SignedTx) (string, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(signed.Raw); err != nil {
		return "", fmt.Errorf("failed to decode transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	c.logger.Info("Transaction broadcast",
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.String("from", signed.From),
		zap.String("chain_id", c.chainID.String()))

	return tx.Hash().Hex(), nil
}

// Receipt gets the transaction receipt, nil while the transaction is not mined
func (c *EVMClient) Receipt(ctx context.Context, hash string) (*Receipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, common.HexToHash(hash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	out := &Receipt{
		Hash:    hash,
		Success: receipt.Status == types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if receipt.EffectiveGasPrice != nil {
		out.FeePaid = new(big.Int).Mul(receipt.EffectiveGasPrice, new(big.Int).SetUint64(receipt.GasUsed))
	}
	return out, nil
}
