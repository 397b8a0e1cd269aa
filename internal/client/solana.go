package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/multichain-wallet/internal/mnemonic"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const (
	solFeeLamports = 5000 // base fee per signature (0.000005 SOL)
)

// solanaRPC is the subset of rpc.Client the Solana client uses
type solanaRPC interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendRawTransactionWithOpts(ctx context.Context, rawTx []byte, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient solanaRPC
	rpcURL    string
	logger    *zap.Logger
}

// NewSolanaClient creates a new Solana client for rpcURL
func NewSolanaClient(rpcURL string, logger *zap.Logger) *SolanaClient {
	logger.Info("Solana client initialized", zap.String("rpc", rpcURL))
	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
		logger:    logger,
	}
}

// ValidateAddress validates a base58 Solana address
func (c *SolanaClient) ValidateAddress(address string) error {
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("invalid Solana address: %w", err)
	}
	return nil
}

// AccountAddress derives the wallet's Solana address from its phrase
func (c *SolanaClient) AccountAddress(creds Credentials) (string, error) {
	key, err := c.keyFor(creds)
	if err != nil {
		return "", err
	}
	defer clear(key)
	return key.PublicKey().String(), nil
}

func (c *SolanaClient) keyFor(creds Credentials) (solana.PrivateKey, error) {
	if creds.Mnemonic == "" {
		return nil, errors.New("solana needs a wallet created or imported from a recovery phrase")
	}
	return mnemonic.DeriveSolanaKey(creds.Mnemonic)
}

// Balance gets SOL balance in lamports
func (c *SolanaClient) Balance(ctx context.Context, address string) (*big.Int, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid Solana address: %w", err)
	}

	balance, err := c.rpcClient.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return new(big.Int).SetUint64(balance.Value), nil
}

// EstimateFee returns the base fee of a single-signature transfer
func (c *SolanaClient) EstimateFee(ctx context.Context) (*Fee, error) {
	return &Fee{
		MaxFee:      big.NewInt(solFeeLamports),
		PriorityFee: new(big.Int),
		GasLimit:    1, // one signature
	}, nil
}

// Sign creates and signs a SOL transfer transaction
func (c *SolanaClient) Sign(ctx context.Context, transfer *Transfer) (*SignedTx, error) {
	if transfer == nil || transfer.Amount == nil {
		return nil, errors.New("incomplete transfer")
	}
	if !transfer.Amount.IsUint64() {
		return nil, errors.New("amount does not fit in lamports")
	}

	toPubkey, err := solana.PublicKeyFromBase58(transfer.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}

	wallet, err := c.keyFor(transfer.From)
	if err != nil {
		return nil, err
	}
	defer clear(wallet)
	fromPubkey := wallet.PublicKey()

	// Get latest blockhash (GetRecentBlockhash is deprecated, use GetLatestBlockhash)
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	transferInstruction := system.NewTransferInstruction(
		transfer.Amount.Uint64(),
		fromPubkey,
		toPubkey,
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(fromPubkey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if fromPubkey.Equals(key) {
			return &wallet
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	return &SignedTx{From: fromPubkey.String(), Hash: tx.Signatures[0].String(), Raw: raw}, nil
}

// Broadcast sends the signed transaction with preflight checks
func (c *SolanaClient) Broadcast(ctx context.Context, signed *SignedTx) (string, error) {
	sig, err := c.rpcClient.SendRawTransactionWithOpts(ctx, signed.Raw, rpc.TransactionOpts{
		SkipPreflight:       false, // Transaction validation before node
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	c.logger.Info("Transaction broadcast",
		zap.String("tx_hash", sig.String()),
		zap.String("from", signed.From),
		zap.String("rpc", c.rpcURL))

	return sig.String(), nil
}

// Receipt reports the signature status. Processed-only signatures count as not yet landed.
func (c *SolanaClient) Receipt(ctx context.Context, hash string) (*Receipt, error) {
	sig, err := solana.SignatureFromBase58(hash)
	if err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}

	res, err := c.rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to get signature status: %w", err)
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return nil, nil
	}

	status := res.Value[0]
	if status.Err == nil && status.ConfirmationStatus == rpc.ConfirmationStatusProcessed {
		return nil, nil
	}

	return &Receipt{
		Hash:        hash,
		Success:     status.Err == nil,
		BlockNumber: status.Slot,
		FeePaid:     big.NewInt(solFeeLamports),
	}, nil
}
