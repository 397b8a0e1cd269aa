package custody

import (
	"context"
	"errors"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

var errNoPoller = errors.New("transaction watching is not enabled")

// GetTransactions returns the local ledger, newest first
func (s *Service) GetTransactions(filter model.HistoryFilter) *model.LogResponse {
	if filter.Address != nil && strings.TrimSpace(*filter.Address) == "" {
		filter.Address = nil
	}
	if filter.Recipient != nil && strings.TrimSpace(*filter.Recipient) == "" {
		filter.Recipient = nil
	}
	if filter.NetworkID != nil && strings.TrimSpace(*filter.NetworkID) == "" {
		filter.NetworkID = nil
	}

	return &model.LogResponse{
		Transactions: s.ledger.History(filter),
	}
}

// PollStatus checks a transaction once and records a final outcome
func (s *Service) PollStatus(ctx context.Context, hash, networkID string) (*model.StatusResponse, error) {
	status, err := s.ledger.PollStatus(ctx, hash, networkID)
	if err != nil {
		return nil, err
	}
	return &model.StatusResponse{Hash: hash, Status: status}, nil
}

// RefreshPending polls every pending transaction once and returns how many resolved
func (s *Service) RefreshPending(ctx context.Context) (int, error) {
	return s.ledger.RefreshPending(ctx)
}

// Watch observes a transaction in the background until it resolves or Unwatch is called.
// Resolved transactions end their watch on the first check.
func (s *Service) Watch(hash, networkID string) error {
	if s.poller == nil {
		return errNoPoller
	}
	n, err := s.networks.Resolve(networkID)
	if err != nil {
		return err
	}
	s.poller.Watch(context.Background(), strings.TrimSpace(hash), n.ID)
	return nil
}

// Unwatch stops observing a transaction. Reports whether a watch was running.
// The transaction itself is unaffected and can still be polled.
func (s *Service) Unwatch(hash, networkID string) (bool, error) {
	if s.poller == nil {
		return false, errNoPoller
	}
	n, err := s.networks.Resolve(networkID)
	if err != nil {
		return false, err
	}
	return s.poller.Unwatch(strings.TrimSpace(hash), n.ID), nil
}

// Watching returns the number of transactions being observed
func (s *Service) Watching() int {
	if s.poller == nil {
		return 0
	}
	return s.poller.Watching()
}
