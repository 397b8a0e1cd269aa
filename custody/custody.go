// Package custody ties the wallet store, the transaction ledger and the session
// together into the operations the API and CLI expose.
package custody

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/ledger"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/network"
	"github.com/AlexZinkM/multichain-wallet/internal/session"
	"github.com/AlexZinkM/multichain-wallet/internal/wallet"

	"go.uber.org/zap"
)

// RateSource prices a native coin in USD
type RateSource interface {
	GetUSDRate(ctx context.Context, symbol string) (string, error)
}

// Service is the custody entry point
type Service struct {
	store    *wallet.Store
	ledger   *ledger.Ledger
	networks *network.Registry
	session  *session.Binding
	rates    RateSource
	poller   *ledger.Poller
	logger   *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithPoller makes Send watch every transaction it submits until it resolves
func WithPoller(p *ledger.Poller) Option {
	return func(s *Service) {
		s.poller = p
	}
}

// New creates a custody service. rates may be nil, in which case balances carry no USD value.
func New(store *wallet.Store, l *ledger.Ledger, networks *network.Registry, binding *session.Binding, rates RateSource, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		ledger:   l,
		networks: networks,
		session:  binding,
		rates:    rates,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Networks lists supported networks
func (s *Service) Networks() []model.Network {
	return s.networks.List()
}

// Session returns the session binding
func (s *Service) Session() *session.Binding {
	return s.session
}

// activeWallet decrypts id, which must be the bound wallet
func (s *Service) activeWallet(ctx context.Context, id string, password []byte) (*model.WalletRecord, error) {
	current, ok := s.session.CurrentWallet()
	if !ok || current != id {
		return nil, fmt.Errorf("%w: wallet %s is not the active wallet", model.ErrNotAuthenticated, id)
	}
	return s.store.Retrieve(ctx, id, password)
}

// ListWallets returns the stored wallet ids. Nothing is decrypted.
func (s *Service) ListWallets(ctx context.Context) ([]string, error) {
	return s.store.ListIDs(ctx)
}

// BindWallet makes a stored wallet the active one without unlocking it
func (s *Service) BindWallet(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrEmptyWalletID
	}
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	return s.session.BindWallet(id)
}
