package ledger

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"go.uber.org/zap"
)

// Poller observes pending transactions until they resolve.
// Stopping a poller or cancelling a watch only stops observation; broadcasts are unaffected.
type Poller struct {
	ledger   *Ledger
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	watches map[string]*watch
	wg      sync.WaitGroup
}

type watch struct {
	cancel context.CancelFunc
}

// NewPoller creates a poller that checks every interval
func NewPoller(ledger *Ledger, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		ledger:   ledger,
		interval: interval,
		logger:   logger,
		watches:  make(map[string]*watch),
	}
}

// Watch polls one transaction until it resolves or ctx is done.
// The returned channel receives the final status and is then closed;
// it is closed without a value when the watch is cancelled first.
func (p *Poller) Watch(ctx context.Context, hash, networkID string) <-chan model.TransactionStatus {
	out := make(chan model.TransactionStatus, 1)
	key := indexKey(strings.ToLower(strings.TrimSpace(networkID)), hash)

	wctx, cancel := context.WithCancel(ctx)
	w := &watch{cancel: cancel}
	p.mu.Lock()
	if prev, ok := p.watches[key]; ok {
		prev.cancel()
	}
	p.watches[key] = w
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(out)
		defer p.forget(key, w)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			status, err := p.ledger.PollStatus(wctx, hash, networkID)
			if err != nil {
				p.logger.Warn("Stopping watch", zap.String("tx_hash", hash), zap.Error(err))
				return
			}
			if status.Resolved() {
				out <- status
				return
			}

			select {
			case <-ticker.C:
			case <-wctx.Done():
				p.logger.Debug("Watch cancelled", zap.String("tx_hash", hash))
				return
			}
		}
	}()

	return out
}

// forget drops the watch entry unless a newer Watch replaced it
func (p *Poller) forget(key string, w *watch) {
	w.cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watches[key] == w {
		delete(p.watches, key)
	}
}

// Unwatch stops observing one transaction. Reports whether a watch was running.
func (p *Poller) Unwatch(hash, networkID string) bool {
	p.mu.Lock()
	w, ok := p.watches[indexKey(strings.ToLower(strings.TrimSpace(networkID)), hash)]
	p.mu.Unlock()
	if ok {
		w.cancel()
	}
	return ok
}

// Watching returns the number of active watches
func (p *Poller) Watching() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.watches)
}

// Run refreshes all pending transactions every interval until ctx is done
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("Starting transaction poller", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			resolved, err := p.ledger.RefreshPending(ctx)
			if err != nil {
				p.logger.Error("Failed to refresh pending transactions", zap.Error(err))
				continue
			}
			if resolved > 0 {
				p.logger.Info("Pending transactions resolved", zap.Int("count", resolved))
			}

		case <-ctx.Done():
			p.logger.Info("Context cancelled, stopping transaction poller")
			return
		}
	}
}

// Stop cancels every watch and waits for them to exit
func (p *Poller) Stop() {
	p.mu.Lock()
	for _, w := range p.watches {
		w.cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
}
