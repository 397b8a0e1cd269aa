package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/client"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Chains resolves networks and their clients
type Chains interface {
	Resolve(id string) (model.Network, error)
	ChainClient(ctx context.Context, id string) (client.ChainClient, error)
	TransactionURL(id, hash string) (string, error)
	ParseAmount(id, amount string) (*big.Int, error)
}

// Option configures a Ledger
type Option func(*Ledger)

// WithConcurrency bounds how many pending transactions RefreshPending polls at once
func WithConcurrency(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Ledger is the append-only local history of submitted transactions.
// Records are never deleted; only pending records change, and only to completed or failed.
type Ledger struct {
	db          storage.Provider
	chains      Chains
	logger      *zap.Logger
	now         func() time.Time
	concurrency int

	mu      sync.RWMutex
	records []*model.TransactionRecord
	keys    []string       // storage key per record, same order
	index   map[string]int // network:hash -> position
	seq     uint64
}

// Open loads the ledger persisted in db
func Open(db storage.Provider, chains Chains, logger *zap.Logger, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		db:          db,
		chains:      chains,
		logger:      logger,
		now:         time.Now,
		concurrency: defaultConcurrency,
		index:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func indexKey(networkID, hash string) string {
	return networkID + ":" + strings.ToLower(hash)
}

func (l *Ledger) load() error {
	err := l.db.IteratePrefix([]byte(storage.TransactionPrefix), func(key, value []byte) bool {
		var rec model.TransactionRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			l.logger.Warn("Skipping unreadable ledger entry", zap.ByteString("key", key), zap.Error(err))
			return true
		}

		if seq, err := strconv.ParseUint(strings.TrimPrefix(string(key), storage.TransactionPrefix), 10, 64); err == nil && seq >= l.seq {
			l.seq = seq + 1
		}

		l.index[indexKey(rec.NetworkID, rec.Hash)] = len(l.records)
		l.records = append(l.records, &rec)
		l.keys = append(l.keys, string(key))
		return true
	})
	if err != nil {
		return fmt.Errorf("%w: failed to load ledger: %v", model.ErrStorage, err)
	}

	l.updatePendingGauge()
	l.logger.Info("Ledger loaded", zap.Int("transactions", len(l.records)))
	return nil
}

// Submit validates the transfer, broadcasts it and records it as pending.
// Network, amount and recipient are checked before any chain call.
// A failed submission records nothing.
func (l *Ledger) Submit(ctx context.Context, wallet *model.WalletRecord, to, amount, networkID string) (*model.TransactionRecord, error) {
	n, err := l.chains.Resolve(networkID)
	if err != nil {
		return nil, err
	}

	value, err := l.chains.ParseAmount(n.ID, amount)
	if err != nil {
		return nil, err
	}
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", model.ErrInvalidAmount)
	}

	if wallet == nil || wallet.Address == "" {
		return nil, fmt.Errorf("%w: wallet has no address", model.ErrCorruptRecord)
	}

	chain, err := l.chains.ChainClient(ctx, n.ID)
	if err != nil {
		return nil, l.submissionFailed(n.ID, "dial", err)
	}

	to = strings.TrimSpace(to)
	if err := chain.ValidateAddress(to); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRecipient, err)
	}

	fee, err := chain.EstimateFee(ctx)
	if err != nil {
		return nil, l.submissionFailed(n.ID, "fee", err)
	}

	signed, err := chain.Sign(ctx, &client.Transfer{
		From: client.Credentials{
			Address:    wallet.Address,
			PrivateKey: wallet.PrivateKey,
			Mnemonic:   wallet.Mnemonic,
		},
		To:     to,
		Amount: value,
		Fee:    fee,
	})
	if err != nil {
		return nil, l.submissionFailed(n.ID, "sign", err)
	}

	// a sent broadcast cannot be taken back, so caller cancellation must not cut it short
	hash, err := chain.Broadcast(context.WithoutCancel(ctx), signed)
	if err != nil {
		return nil, l.submissionFailed(n.ID, "broadcast", err)
	}

	rec := &model.TransactionRecord{
		Hash:      hash,
		From:      signed.From,
		To:        to,
		Amount:    common.FromBaseUnits(value, n.Decimals),
		NetworkID: n.ID,
		Kind:      model.TransactionKindSend,
		CreatedAt: l.now().UTC(),
		Status:    model.StatusPending,
		Fee:       common.FromBaseUnits(fee.Total(), n.Decimals),
	}
	if url, err := l.chains.TransactionURL(n.ID, hash); err == nil {
		rec.ExplorerURL = url
	}

	stored := l.append(rec)
	transactionsSubmitted.WithLabelValues(n.ID).Inc()

	l.logger.Info("Transaction submitted",
		zap.String("tx_hash", hash),
		zap.String("network", n.ID),
		zap.String("from", rec.From),
		zap.String("to", rec.To),
		zap.String("amount", rec.Amount))

	return &stored, nil
}

func (l *Ledger) submissionFailed(networkID, stage string, err error) error {
	submissionFailures.WithLabelValues(networkID, stage).Inc()
	l.logger.Warn("Transaction submission failed",
		zap.String("network", networkID),
		zap.String("stage", stage),
		zap.Error(err))
	return &model.SubmissionError{Reason: fmt.Sprintf("%s: %v", stage, err), Err: err}
}

// append adds rec unless the same hash is already recorded for its network, and returns the stored copy
func (l *Ledger) append(rec *model.TransactionRecord) model.TransactionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	ik := indexKey(rec.NetworkID, rec.Hash)
	if i, ok := l.index[ik]; ok {
		return *l.records[i]
	}

	key := fmt.Sprintf("%s%020d", storage.TransactionPrefix, l.seq)
	l.seq++

	l.index[ik] = len(l.records)
	l.records = append(l.records, rec)
	l.keys = append(l.keys, key)

	// the transaction is already on its way, so a write failure is logged rather than returned
	if err := l.persist(key, rec); err != nil {
		l.logger.Error("Failed to persist transaction", zap.String("tx_hash", rec.Hash), zap.Error(err))
	}

	l.updatePendingGaugeLocked()
	return *rec
}

func (l *Ledger) persist(key string, rec *model.TransactionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if err := l.db.Put([]byte(key), data); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return nil
}

// PollStatus looks up the receipt of a pending transaction and records the outcome.
// Resolved transactions return their stored status without a chain call.
// A missing receipt or a failed lookup reads as pending.
// Unknown hashes are looked up on chain but nothing is recorded for them.
func (l *Ledger) PollStatus(ctx context.Context, hash, networkID string) (model.TransactionStatus, error) {
	n, err := l.chains.Resolve(networkID)
	if err != nil {
		return "", err
	}

	if rec, ok := l.Get(hash, n.ID); ok && rec.Status.Resolved() {
		return rec.Status, nil
	}

	chain, err := l.chains.ChainClient(ctx, n.ID)
	if err != nil {
		l.logger.Debug("Chain client unavailable, still pending", zap.String("network", n.ID), zap.Error(err))
		return model.StatusPending, nil
	}

	receipt, err := chain.Receipt(ctx, hash)
	if err != nil {
		l.logger.Debug("Receipt lookup failed, still pending",
			zap.String("tx_hash", hash),
			zap.String("network", n.ID),
			zap.Error(err))
		return model.StatusPending, nil
	}
	if receipt == nil {
		return model.StatusPending, nil
	}

	status := model.StatusFailed
	if receipt.Success {
		status = model.StatusCompleted
	}

	return l.resolve(n, hash, status, receipt), nil
}

// resolve moves a pending record to status. Returns the status now stored, which is the
// earlier outcome when another poll got there first.
func (l *Ledger) resolve(n model.Network, hash string, status model.TransactionStatus, receipt *client.Receipt) model.TransactionStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[indexKey(n.ID, hash)]
	if !ok {
		return status
	}

	rec := l.records[i]
	if rec.Status.Resolved() {
		return rec.Status
	}

	updated := *rec
	resolvedAt := l.now().UTC()
	updated.Status = status
	updated.BlockNumber = receipt.BlockNumber
	updated.ResolvedAt = &resolvedAt
	if receipt.FeePaid != nil {
		updated.Fee = common.FromBaseUnits(receipt.FeePaid, n.Decimals)
	}

	if err := l.persist(l.keys[i], &updated); err != nil {
		// keep the record pending so the next poll retries the write
		l.logger.Error("Failed to persist status change", zap.String("tx_hash", hash), zap.Error(err))
		return model.StatusPending
	}
	*rec = updated

	statusTransitions.WithLabelValues(n.ID, string(status)).Inc()
	l.updatePendingGaugeLocked()

	l.logger.Info("Transaction resolved",
		zap.String("tx_hash", hash),
		zap.String("network", n.ID),
		zap.String("status", string(status)),
		zap.Uint64("block", receipt.BlockNumber))

	return status
}

// Get returns a copy of the record for hash on networkID
func (l *Ledger) Get(hash, networkID string) (model.TransactionRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[indexKey(strings.ToLower(networkID), hash)]
	if !ok {
		return model.TransactionRecord{}, false
	}
	return *l.records[i], true
}

// History returns matching records newest first. Records with equal timestamps keep insertion order.
// Address matches the sender and Recipient the receiver, both case-insensitively.
func (l *Ledger) History(filter model.HistoryFilter) []model.TransactionRecord {
	l.mu.RLock()
	out := make([]model.TransactionRecord, 0, len(l.records))
	for _, rec := range l.records {
		if filter.Address != nil && !strings.EqualFold(rec.From, strings.TrimSpace(*filter.Address)) {
			continue
		}
		if filter.Recipient != nil && !strings.EqualFold(rec.To, strings.TrimSpace(*filter.Recipient)) {
			continue
		}
		if filter.NetworkID != nil && rec.NetworkID != strings.ToLower(strings.TrimSpace(*filter.NetworkID)) {
			continue
		}
		out = append(out, *rec)
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Pending returns the records still waiting for a receipt, in insertion order
func (l *Ledger) Pending() []model.TransactionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.TransactionRecord, 0)
	for _, rec := range l.records {
		if rec.Status == model.StatusPending {
			out = append(out, *rec)
		}
	}
	return out
}

// RefreshPending polls every pending record concurrently and returns how many resolved.
// Completed and failed records are never polled again.
func (l *Ledger) RefreshPending(ctx context.Context) (int, error) {
	pending := l.Pending()
	if len(pending) == 0 {
		return 0, nil
	}

	var resolved atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for _, rec := range pending {
		g.Go(func() error {
			status, err := l.PollStatus(gctx, rec.Hash, rec.NetworkID)
			if err != nil {
				return fmt.Errorf("failed to poll %s: %w", rec.Hash, err)
			}
			if status.Resolved() {
				resolved.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	return int(resolved.Load()), err
}

func (l *Ledger) updatePendingGauge() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.updatePendingGaugeLocked()
}

func (l *Ledger) updatePendingGaugeLocked() {
	count := 0
	for _, rec := range l.records {
		if rec.Status == model.StatusPending {
			count++
		}
	}
	pendingTransactions.Set(float64(count))
}
