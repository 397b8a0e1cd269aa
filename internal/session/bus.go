package session

import (
	"sync"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriberID identifies one change subscription
type SubscriberID string

// Change is the session state after a write
type Change struct {
	IdentityID string
	WalletID   string
	AuthType   model.AuthType
}

// Connected reports whether a wallet is bound in this state
func (c Change) Connected() bool {
	return c.WalletID != ""
}

// bus fans session changes out to subscribers. Each subscriber has a one-slot mailbox:
// a newer change replaces an unread one, so slow readers always end on the latest state.
type bus struct {
	mu          sync.Mutex
	subscribers map[SubscriberID]chan Change
	logger      *zap.Logger
}

func newBus(logger *zap.Logger) *bus {
	return &bus{
		subscribers: make(map[SubscriberID]chan Change),
		logger:      logger,
	}
}

func (b *bus) subscribe() (SubscriberID, <-chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := SubscriberID(uuid.Must(uuid.NewV7()).String())
	ch := make(chan Change, 1)
	b.subscribers[id] = ch

	b.logger.Debug("Session subscriber added",
		zap.String("subscriber_id", string(id)),
		zap.Int("total_subscribers", len(b.subscribers)))
	return id, ch
}

func (b *bus) unsubscribe(id SubscriberID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return false
	}
	delete(b.subscribers, id)
	close(ch)
	return true
}

func (b *bus) publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- c:
		default:
			// drop the stale change; only publish sends, so the slot is free afterwards
			select {
			case <-ch:
			default:
			}
			ch <- c
		}
	}
}

func (b *bus) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
