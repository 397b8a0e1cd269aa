package client

import (
	"context"
	"math/big"
)

// ChainClient is the per-network node client used by the ledger and the custody flows
type ChainClient interface {
	// Balance returns the native balance in base units (wei, lamports)
	Balance(ctx context.Context, address string) (*big.Int, error)
	EstimateFee(ctx context.Context) (*Fee, error)
	Sign(ctx context.Context, transfer *Transfer) (*SignedTx, error)
	// Broadcast sends a signed transaction and returns its hash
	Broadcast(ctx context.Context, tx *SignedTx) (string, error)
	// Receipt returns nil, nil while the transaction has no receipt yet
	Receipt(ctx context.Context, hash string) (*Receipt, error)
	ValidateAddress(address string) error
	// AccountAddress is the address the wallet uses on this chain
	AccountAddress(creds Credentials) (string, error)
}

// Fee is a fee estimate in base units
type Fee struct {
	MaxFee      *big.Int // per gas unit (EVM) or per signature (Solana)
	PriorityFee *big.Int
	GasLimit    uint64
}

// Total is the most the transaction can cost: MaxFee * GasLimit
func (f *Fee) Total() *big.Int {
	if f == nil || f.MaxFee == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(f.MaxFee, new(big.Int).SetUint64(f.GasLimit))
}

// Credentials is the signing material of one wallet
type Credentials struct {
	Address    string
	PrivateKey string // hex secp256k1 key
	Mnemonic   string // needed for chains that derive their own key from the phrase
}

// Transfer is a native coin transfer to sign
type Transfer struct {
	From   Credentials
	To     string
	Amount *big.Int // base units
	Fee    *Fee
}

// SignedTx is a serialized, signed transaction
type SignedTx struct {
	From string
	Hash string
	Raw  []byte
}

// Receipt is the on-chain outcome of a transaction
type Receipt struct {
	Hash        string
	Success     bool
	BlockNumber uint64
	FeePaid     *big.Int
}
