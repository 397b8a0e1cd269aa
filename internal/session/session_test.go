package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIdentity struct {
	id    string
	err   error
	calls int
}

func (f *fakeIdentity) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	f.calls++
	return f.id, f.err
}

// failingDB rejects writes
type failingDB struct {
	storage.Provider
}

func (failingDB) Put(key, value []byte) error { return errors.New("disk full") }
func (failingDB) Delete(key []byte) error     { return errors.New("disk full") }

// slowDB delays writes of one value
type slowDB struct {
	storage.Provider
	value string
	delay time.Duration
}

func (d slowDB) Put(key, value []byte) error {
	if string(value) == d.value {
		time.Sleep(d.delay)
	}
	return d.Provider.Put(key, value)
}

func openDB(t *testing.T) storage.Provider {
	t.Helper()
	db, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newBinding(t *testing.T, db storage.Provider, identity IdentityProvider) *Binding {
	t.Helper()
	b, err := New(db, identity, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return b
}

func TestDefaults(t *testing.T) {
	b := newBinding(t, openDB(t), nil)

	_, ok := b.CurrentWallet()
	assert.False(t, ok)
	assert.False(t, b.IsConnected())
	assert.Equal(t, model.AuthTypePhraseSecured, b.AuthType())

	_, err := b.SignIn(context.Background(), Credentials{Email: "a@b.c"})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestBindWallet(t *testing.T) {
	b := newBinding(t, openDB(t), nil)

	assert.ErrorIs(t, b.BindWallet(""), model.ErrEmptyWalletID)
	assert.ErrorIs(t, b.BindWallet("  "), model.ErrEmptyWalletID)
	assert.False(t, b.IsConnected())

	require.NoError(t, b.BindWallet("w-1"))
	id, ok := b.CurrentWallet()
	assert.True(t, ok)
	assert.Equal(t, "w-1", id)
	assert.True(t, b.IsConnected())
}

func TestSetAuthType(t *testing.T) {
	b := newBinding(t, openDB(t), nil)

	assert.ErrorIs(t, b.SetAuthType("web4"), model.ErrInvalidAuthType)
	assert.Equal(t, model.AuthTypePhraseSecured, b.AuthType())

	require.NoError(t, b.SetAuthType(model.AuthTypeCredentialed))
	assert.Equal(t, model.AuthTypeCredentialed, b.AuthType())
}

func TestDisconnectKeepsIdentity(t *testing.T) {
	idp := &fakeIdentity{id: "user-7"}
	b := newBinding(t, openDB(t), idp)

	_, err := b.SignIn(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, b.SetAuthType(model.AuthTypeCredentialed))
	require.NoError(t, b.BindWallet("w-1"))

	require.NoError(t, b.Disconnect())
	assert.False(t, b.IsConnected())

	identity, ok := b.IdentityID()
	assert.True(t, ok)
	assert.Equal(t, "user-7", identity)
	assert.Equal(t, model.AuthTypeCredentialed, b.AuthType())
}

func TestSignOut(t *testing.T) {
	db := openDB(t)
	idp := &fakeIdentity{id: "user-7"}
	b := newBinding(t, db, idp)

	_, err := b.SignIn(context.Background(), Credentials{})
	require.NoError(t, err)
	require.NoError(t, b.BindWallet("w-1"))

	// a stored wallet blob must survive sign out
	require.NoError(t, db.Put([]byte(storage.WalletPrefix+"w-1"), []byte("{}")))

	require.NoError(t, b.SignOut(context.Background()))
	_, ok := b.IdentityID()
	assert.False(t, ok)
	assert.False(t, b.IsConnected())

	has, err := db.Has([]byte(storage.WalletPrefix + "w-1"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSignInFailure(t *testing.T) {
	b := newBinding(t, openDB(t), &fakeIdentity{err: errors.New("bad password")})

	_, err := b.SignIn(context.Background(), Credentials{})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	_, ok := b.IdentityID()
	assert.False(t, ok)

	b = newBinding(t, openDB(t), &fakeIdentity{})
	_, err = b.SignIn(context.Background(), Credentials{})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestPersistedAcrossReopen(t *testing.T) {
	db := openDB(t)
	b := newBinding(t, db, &fakeIdentity{id: "user-7"})

	_, err := b.SignIn(context.Background(), Credentials{})
	require.NoError(t, err)
	require.NoError(t, b.BindWallet("w-2"))
	require.NoError(t, b.SetAuthType(model.AuthTypeCredentialed))

	reopened := newBinding(t, db, nil)
	id, ok := reopened.CurrentWallet()
	assert.True(t, ok)
	assert.Equal(t, "w-2", id)
	assert.Equal(t, model.AuthTypeCredentialed, reopened.AuthType())

	// identity is not durable
	_, ok = reopened.IdentityID()
	assert.False(t, ok)
}

func TestWriteFailureKeepsState(t *testing.T) {
	db := openDB(t)
	b := newBinding(t, db, nil)
	require.NoError(t, b.BindWallet("w-1"))

	b.db = failingDB{Provider: db}
	assert.ErrorIs(t, b.BindWallet("w-2"), model.ErrStorage)
	assert.ErrorIs(t, b.SetAuthType(model.AuthTypeCredentialed), model.ErrStorage)
	assert.ErrorIs(t, b.Disconnect(), model.ErrStorage)

	id, _ := b.CurrentWallet()
	assert.Equal(t, "w-1", id)
	assert.Equal(t, model.AuthTypePhraseSecured, b.AuthType())
}

func TestSubscribersSeeLatest(t *testing.T) {
	b := newBinding(t, openDB(t), nil)
	id, ch := b.Subscribe()

	// nobody reads while several writes land
	require.NoError(t, b.BindWallet("w-1"))
	require.NoError(t, b.BindWallet("w-2"))
	require.NoError(t, b.SetAuthType(model.AuthTypeCredentialed))

	select {
	case c := <-ch:
		assert.Equal(t, "w-2", c.WalletID)
		assert.Equal(t, model.AuthTypeCredentialed, c.AuthType)
		assert.True(t, c.Connected())
	case <-time.After(time.Second):
		t.Fatal("no change delivered")
	}

	select {
	case c := <-ch:
		t.Fatalf("stale change delivered: %+v", c)
	default:
	}

	require.NoError(t, b.Disconnect())
	c := <-ch
	assert.False(t, c.Connected())

	assert.True(t, b.Unsubscribe(id))
	assert.False(t, b.Unsubscribe(id))
	_, open := <-ch
	assert.False(t, open)
}

func TestMultipleSubscribers(t *testing.T) {
	b := newBinding(t, openDB(t), nil)
	_, first := b.Subscribe()
	_, second := b.Subscribe()

	require.NoError(t, b.BindWallet("w-9"))

	assert.Equal(t, "w-9", (<-first).WalletID)
	assert.Equal(t, "w-9", (<-second).WalletID)
}

func TestConcurrentBindsDeliverFinalState(t *testing.T) {
	b := newBinding(t, slowDB{Provider: openDB(t), value: "w-0", delay: 20 * time.Millisecond}, nil)
	_, ch := b.Subscribe()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.BindWallet(fmt.Sprintf("w-%d", i)))
		}()
	}
	wg.Wait()

	current, ok := b.CurrentWallet()
	require.True(t, ok)

	select {
	case c := <-ch:
		assert.Equal(t, current, c.WalletID)
	case <-time.After(time.Second):
		t.Fatal("no change delivered")
	}
}
