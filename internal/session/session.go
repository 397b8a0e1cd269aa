package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"

	"go.uber.org/zap"
)

// Persisted session keys
const (
	currentWalletKey = storage.SessionPrefix + "currentWalletId"
	authTypeKey      = storage.SessionPrefix + "authType"
)

var errNoProvider = errors.New("no identity provider configured")

// Credentials are handed to the identity provider as-is
type Credentials struct {
	Email    string
	Password string
	Provider string
}

// IdentityProvider authenticates a user and returns an opaque identity id
type IdentityProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (string, error)
}

// Binding ties an authenticated identity and an auth mode to one active wallet.
// The wallet id and auth type are durable; the identity lives only as long as the process.
type Binding struct {
	db       storage.Provider
	identity IdentityProvider
	logger   *zap.Logger
	bus      *bus

	mu         sync.RWMutex
	identityID string
	walletID   string
	authType   model.AuthType
}

// New loads the persisted binding from db. identity may be nil, in which case SignIn fails.
func New(db storage.Provider, identity IdentityProvider, logger *zap.Logger) (*Binding, error) {
	b := &Binding{
		db:       db,
		identity: identity,
		logger:   logger,
		bus:      newBus(logger),
	}

	walletID, err := db.Get([]byte(currentWalletKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load session: %v", model.ErrStorage, err)
	}
	b.walletID = string(walletID)

	authType, err := db.Get([]byte(authTypeKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load session: %v", model.ErrStorage, err)
	}
	if t := model.AuthType(authType); t.Valid() {
		b.authType = t
	}

	return b, nil
}

// SignIn authenticates through the identity provider and records the identity
func (b *Binding) SignIn(ctx context.Context, creds Credentials) (string, error) {
	if b.identity == nil {
		return "", fmt.Errorf("%w: %v", model.ErrNotAuthenticated, errNoProvider)
	}

	id, err := b.identity.Authenticate(ctx, creds)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrNotAuthenticated, err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: identity provider returned no id", model.ErrNotAuthenticated)
	}

	b.mu.Lock()
	b.identityID = id
	// published under b.mu so subscribers see changes in write order
	b.bus.publish(b.snapshotLocked())
	b.mu.Unlock()

	b.logger.Info("Signed in", zap.String("identity_id", id))
	return id, nil
}

// IdentityID returns the signed in identity, if any
func (b *Binding) IdentityID() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.identityID, b.identityID != ""
}

// BindWallet makes walletID the active wallet
func (b *Binding) BindWallet(walletID string) error {
	walletID = strings.TrimSpace(walletID)
	if walletID == "" {
		return model.ErrEmptyWalletID
	}

	b.mu.Lock()
	if err := b.db.Put([]byte(currentWalletKey), []byte(walletID)); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: failed to bind wallet: %v", model.ErrStorage, err)
	}
	b.walletID = walletID
	b.bus.publish(b.snapshotLocked())
	b.mu.Unlock()

	b.logger.Info("Wallet bound", zap.String("wallet_id", walletID))
	return nil
}

// CurrentWallet returns the active wallet id
func (b *Binding) CurrentWallet() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.walletID, b.walletID != ""
}

// IsConnected reports whether a wallet is bound
func (b *Binding) IsConnected() bool {
	_, ok := b.CurrentWallet()
	return ok
}

// SetAuthType records how the user entered
func (b *Binding) SetAuthType(t model.AuthType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidAuthType, t)
	}

	b.mu.Lock()
	if err := b.db.Put([]byte(authTypeKey), []byte(t)); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: failed to store auth type: %v", model.ErrStorage, err)
	}
	b.authType = t
	b.bus.publish(b.snapshotLocked())
	b.mu.Unlock()

	return nil
}

// AuthType returns the recorded auth type, phrase-secured when none was set
func (b *Binding) AuthType() model.AuthType {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.authTypeLocked()
}

func (b *Binding) authTypeLocked() model.AuthType {
	if b.authType == "" {
		return model.AuthTypePhraseSecured
	}
	return b.authType
}

// Disconnect unbinds the wallet. Identity and auth type stay.
func (b *Binding) Disconnect() error {
	b.mu.Lock()
	if err := b.db.Delete([]byte(currentWalletKey)); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: failed to disconnect: %v", model.ErrStorage, err)
	}
	b.walletID = ""
	b.bus.publish(b.snapshotLocked())
	b.mu.Unlock()

	b.logger.Info("Wallet disconnected")
	return nil
}

// SignOut clears identity and wallet. Stored wallets are left alone.
func (b *Binding) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	if err := b.db.Delete([]byte(currentWalletKey)); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: failed to sign out: %v", model.ErrStorage, err)
	}
	b.identityID = ""
	b.walletID = ""
	b.bus.publish(b.snapshotLocked())
	b.mu.Unlock()

	b.logger.Info("Signed out")
	return nil
}

// Snapshot returns the current state
func (b *Binding) Snapshot() Change {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Binding) snapshotLocked() Change {
	return Change{
		IdentityID: b.identityID,
		WalletID:   b.walletID,
		AuthType:   b.authTypeLocked(),
	}
}

// Subscribe registers for change notifications. A subscriber that falls behind
// only sees the latest state.
func (b *Binding) Subscribe() (SubscriberID, <-chan Change) {
	return b.bus.subscribe()
}

// Unsubscribe closes the subscription's channel
func (b *Binding) Unsubscribe(id SubscriberID) bool {
	return b.bus.unsubscribe(id)
}

// Close ends all subscriptions
func (b *Binding) Close() {
	b.bus.closeAll()
}
