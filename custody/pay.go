package custody

import (
	"context"
	"sync"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// sends are serialized process-wide; EVM signing reads the pending nonce
var payMutex sync.Mutex

// Send signs and broadcasts a native transfer from the active wallet and records it as pending.
// password must be []byte for security (caller should zero it after use)
func (s *Service) Send(ctx context.Context, id string, password []byte, toAddress, amount, networkID string) (*model.PayResponse, error) {
	record, err := s.activeWallet(ctx, id, password)
	if err != nil {
		return nil, err
	}
	// Always clear private key from memory
	defer record.Wipe()

	payMutex.Lock()
	defer payMutex.Unlock()

	tx, err := s.ledger.Submit(ctx, record, toAddress, amount, networkID)
	if err != nil {
		return nil, err
	}

	// the watch outlives the request; Poller.Stop ends it
	if s.poller != nil {
		s.poller.Watch(context.Background(), tx.Hash, tx.NetworkID)
	}

	return &model.PayResponse{
		TxID:        tx.Hash,
		Status:      tx.Status,
		ExplorerURL: tx.ExplorerURL,
	}, nil
}
