// Package clienttest provides an in-memory ChainClient for tests.
package clienttest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/AlexZinkM/multichain-wallet/internal/client"
)

// Chain is a scriptable client.ChainClient. Zero value is ready to use.
type Chain struct {
	mu sync.Mutex

	Balances     map[string]*big.Int
	FeeErr       error
	SignErr      error
	BroadcastErr error
	ReceiptErr   error

	receipts  map[string]*client.Receipt
	seq       int
	Calls     map[string]int
	Sent      []*client.SignedTx
	// BroadcastCtxErrs records ctx.Err() as seen by each Broadcast call
	BroadcastCtxErrs []error
}

var _ client.ChainClient = (*Chain)(nil)

func (c *Chain) called(name string) {
	if c.Calls == nil {
		c.Calls = make(map[string]int)
	}
	c.Calls[name]++
}

// CallCount returns how often method name was invoked
func (c *Chain) CallCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[name]
}

// SetReceipt scripts the receipt returned for hash. nil clears it.
func (c *Chain) SetReceipt(hash string, r *client.Receipt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipts == nil {
		c.receipts = make(map[string]*client.Receipt)
	}
	if r == nil {
		delete(c.receipts, hash)
		return
	}
	c.receipts[hash] = r
}

// SetReceiptErr scripts a receipt lookup failure
func (c *Chain) SetReceiptErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ReceiptErr = err
}

func (c *Chain) Balance(ctx context.Context, address string) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.called("Balance")
	if b, ok := c.Balances[strings.ToLower(address)]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (c *Chain) EstimateFee(ctx context.Context) (*client.Fee, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.called("EstimateFee")
	if c.FeeErr != nil {
		return nil, c.FeeErr
	}
	return &client.Fee{MaxFee: big.NewInt(30), PriorityFee: big.NewInt(2), GasLimit: 21000}, nil
}

func (c *Chain) Sign(ctx context.Context, transfer *client.Transfer) (*client.SignedTx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.called("Sign")
	if c.SignErr != nil {
		return nil, c.SignErr
	}
	c.seq++
	hash := fmt.Sprintf("0x%064x", c.seq)
	return &client.SignedTx{From: transfer.From.Address, Hash: hash, Raw: []byte(hash)}, nil
}

func (c *Chain) Broadcast(ctx context.Context, tx *client.SignedTx) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.called("Broadcast")
	c.BroadcastCtxErrs = append(c.BroadcastCtxErrs, ctx.Err())
	if c.BroadcastErr != nil {
		return "", c.BroadcastErr
	}
	c.Sent = append(c.Sent, tx)
	return tx.Hash, nil
}

func (c *Chain) Receipt(ctx context.Context, hash string) (*client.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.called("Receipt")
	if c.ReceiptErr != nil {
		return nil, c.ReceiptErr
	}
	return c.receipts[hash], nil
}

func (c *Chain) ValidateAddress(address string) error {
	if !strings.HasPrefix(address, "0x") || len(address) != 42 {
		return errors.New("invalid address")
	}
	return nil
}

func (c *Chain) AccountAddress(creds client.Credentials) (string, error) {
	return creds.Address, nil
}
