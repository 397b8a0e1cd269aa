package custody

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/client"
	"github.com/AlexZinkM/multichain-wallet/internal/client/clienttest"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/ledger"
	"github.com/AlexZinkM/multichain-wallet/internal/mnemonic"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/network"
	"github.com/AlexZinkM/multichain-wallet/internal/session"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	abandonPhrase  = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	abandonAddress = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	recipient      = "0x000000000000000000000000000000000000dEaD"
)

type fakeRates struct {
	rate string
	err  error
}

func (f *fakeRates) GetUSDRate(ctx context.Context, symbol string) (string, error) {
	return f.rate, f.err
}

type fixture struct {
	svc   *Service
	chain *clienttest.Chain
	rates *fakeRates
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return buildFixture(t, 0)
}

// newWatchingFixture polls submitted transactions every interval
func newWatchingFixture(t *testing.T, interval time.Duration) *fixture {
	t.Helper()
	return buildFixture(t, interval)
}

func buildFixture(t *testing.T, interval time.Duration) *fixture {
	t.Helper()
	db, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := zap.NewNop()
	chain := &clienttest.Chain{}
	registry := network.NewRegistry(nil, func(ctx context.Context, n model.Network) (client.ChainClient, error) {
		return chain, nil
	}, logger)

	l, err := ledger.Open(db, registry, logger)
	require.NoError(t, err)
	binding, err := session.New(db, nil, logger)
	require.NoError(t, err)
	t.Cleanup(binding.Close)

	rates := &fakeRates{rate: "2000"}
	store := wallet.NewStore(db, crypto.NewCodec(crypto.Params{N: 1 << 4}), logger)

	var opts []Option
	if interval > 0 {
		poller := ledger.NewPoller(l, interval, logger)
		t.Cleanup(poller.Stop)
		opts = append(opts, WithPoller(poller))
	}

	return &fixture{
		svc:   New(store, l, registry, binding, rates, logger, opts...),
		chain: chain,
		rates: rates,
	}
}

func TestCreateWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	password := []byte("hunter2")

	resp, err := f.svc.CreateWallet(ctx, password, "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.WalletID)
	assert.Len(t, strings.Fields(resp.Mnemonic), mnemonic.WordCount)
	require.Len(t, resp.Challenge, 4)

	identity, err := mnemonic.DeriveIdentity(resp.Mnemonic)
	require.NoError(t, err)
	assert.Equal(t, identity.Address, resp.Address)

	current, ok := f.svc.Session().CurrentWallet()
	assert.True(t, ok)
	assert.Equal(t, resp.WalletID, current)
	assert.Equal(t, model.AuthTypePhraseSecured, f.svc.Session().AuthType())

	words := make(map[int]string)
	for _, sw := range resp.Challenge {
		words[sw.Position] = sw.Word
	}
	words[resp.Challenge[0].Position] = "wrong"
	ok, err = f.svc.VerifyChallenge(ctx, resp.WalletID, password, words)
	require.NoError(t, err)
	assert.False(t, ok)

	words[resp.Challenge[0].Position] = resp.Challenge[0].Word
	ok, err = f.svc.VerifyChallenge(ctx, resp.WalletID, password, words)
	require.NoError(t, err)
	assert.True(t, ok)

	// consumed by the first success
	ok, err = f.svc.VerifyChallenge(ctx, resp.WalletID, password, words)
	assert.ErrorIs(t, err, model.ErrChallengeUsed)
	assert.False(t, ok)

	// confirmation survives a password change
	newID, err := f.svc.Rekey(ctx, resp.WalletID, password, []byte("hunter3"))
	require.NoError(t, err)
	_, err = f.svc.VerifyChallenge(ctx, newID, []byte("hunter3"), words)
	assert.ErrorIs(t, err, model.ErrChallengeUsed)
	password = []byte("hunter3")
	resp.WalletID = newID

	all := strings.Fields(resp.Mnemonic)
	partial := strings.Join([]string{all[8], all[2], all[6], all[10]}, " ")
	ok, err = f.svc.VerifyPartial(ctx, resp.WalletID, password, partial)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateWalletRejectsAuthType(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateWallet(context.Background(), []byte("pw"), "web4")
	assert.ErrorIs(t, err, model.ErrInvalidAuthType)
	assert.False(t, f.svc.Session().IsConnected())
}

func TestImportWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.ImportWallet(ctx, "  Abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ABOUT ", "",
		[]byte("pw"), model.AuthTypeCredentialed)
	require.NoError(t, err)
	assert.Equal(t, abandonAddress, resp.Address)
	assert.Equal(t, model.AuthTypeCredentialed, resp.AuthType)
	assert.NotEmpty(t, resp.QR)
	assert.Equal(t, model.AuthTypeCredentialed, f.svc.Session().AuthType())

	ok, err := f.svc.VerifyPartial(ctx, resp.WalletID, []byte("pw"), "abandon abandon abandon abandon")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImportPrivateKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	identity, err := mnemonic.DeriveIdentity(abandonPhrase)
	require.NoError(t, err)

	resp, err := f.svc.ImportWallet(ctx, "", "0x"+identity.PrivateKey, []byte("pw"), "")
	require.NoError(t, err)
	assert.Equal(t, abandonAddress, resp.Address)

	// no phrase stored, so phrase checks never pass
	ok, err := f.svc.VerifyChallenge(ctx, resp.WalletID, []byte("pw"), map[int]string{3: "abandon", 6: "abandon", 9: "abandon", 12: "about"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImportWalletErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.ImportWallet(ctx, "", "", []byte("pw"), "")
	assert.ErrorIs(t, err, model.ErrInvalidMnemonic)

	_, err = f.svc.ImportWallet(ctx, "abandon abandon abandon", "", []byte("pw"), "")
	assert.ErrorIs(t, err, model.ErrInvalidMnemonic)

	_, err = f.svc.ImportWallet(ctx, "", "zz", []byte("pw"), "")
	assert.ErrorIs(t, err, model.ErrInvalidPrivateKey)

	assert.False(t, f.svc.Session().IsConnected())
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.CreateWallet(ctx, []byte("right"), model.AuthTypeCredentialed)
	require.NoError(t, err)
	require.NoError(t, f.svc.Session().Disconnect())

	_, err = f.svc.Unlock(ctx, created.WalletID, []byte("wrong"))
	require.ErrorIs(t, err, model.ErrDecryptionFailed)
	assert.Equal(t, model.UnlockFailedMessage, model.PublicMessage(err))
	assert.False(t, f.svc.Session().IsConnected())

	_, missing := f.svc.Unlock(ctx, "no-such-wallet", []byte("right"))
	require.ErrorIs(t, missing, model.ErrNotFound)
	assert.Equal(t, model.PublicMessage(err), model.PublicMessage(missing))

	resp, err := f.svc.Unlock(ctx, created.WalletID, []byte("right"))
	require.NoError(t, err)
	assert.Equal(t, created.Address, resp.Address)
	assert.Equal(t, model.AuthTypeCredentialed, resp.AuthType)
	assert.True(t, f.svc.Session().IsConnected())
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)

	resp, err := f.svc.Send(ctx, created.WalletID, []byte("pw"), recipient, "0.5", "polygon")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, resp.Status)
	assert.Equal(t, "https://polygonscan.com/tx/"+resp.TxID, resp.ExplorerURL)

	require.Len(t, f.chain.Sent, 1)
	assert.Equal(t, abandonAddress, f.chain.Sent[0].From)

	history := f.svc.GetTransactions(model.HistoryFilter{})
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, "0.5", history.Transactions[0].Amount)

	f.chain.SetReceipt(resp.TxID, &client.Receipt{Hash: resp.TxID, Success: true})
	status, err := f.svc.PollStatus(ctx, resp.TxID, "polygon")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, status.Status)

	resolved, err := f.svc.RefreshPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, resolved)
}

func TestSendRequiresActiveWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)
	require.NoError(t, f.svc.Session().Disconnect())

	_, err = f.svc.Send(ctx, created.WalletID, []byte("pw"), recipient, "1", "ethereum")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	assert.Zero(t, f.chain.CallCount("Broadcast"))
}

func TestSendWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)

	_, err = f.svc.Send(ctx, created.WalletID, []byte("nope"), recipient, "1", "ethereum")
	assert.ErrorIs(t, err, model.ErrDecryptionFailed)
	assert.Empty(t, f.svc.GetTransactions(model.HistoryFilter{}).Transactions)
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)

	f.chain.Balances = map[string]*big.Int{
		strings.ToLower(abandonAddress): big.NewInt(1_500_000_000_000_000_000),
	}

	resp, err := f.svc.GetBalance(ctx, created.WalletID, []byte("pw"), "Ethereum")
	require.NoError(t, err)
	assert.Equal(t, abandonAddress, resp.Address)
	assert.Equal(t, "ethereum", resp.Network)
	assert.Equal(t, "1.5", resp.Balance)
	assert.Equal(t, "1.5000 ETH", resp.Display)
	assert.Equal(t, "https://etherscan.io/address/"+abandonAddress, resp.Explorer)
	assert.Equal(t, "2000", resp.USDRate)
	assert.Equal(t, "3000.00", resp.USDAmount)

	f.rates.err = errors.New("rate limited")
	resp, err = f.svc.GetBalance(ctx, created.WalletID, []byte("pw"), "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "1.5", resp.Balance)
	assert.Empty(t, resp.USDAmount)

	_, err = f.svc.GetBalance(ctx, created.WalletID, []byte("pw"), "tron")
	assert.ErrorIs(t, err, model.ErrUnsupportedNetwork)
}

func TestEstimateFee(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.EstimateFee(context.Background(), "binance")
	require.NoError(t, err)
	assert.Equal(t, "binance", resp.Network)
	assert.Equal(t, "0.00000000000063", resp.Fee)
	assert.Equal(t, "30", resp.MaxFee)
	assert.Equal(t, "2", resp.PriorityFee)
	assert.Equal(t, uint64(21000), resp.GasLimit)

	f.chain.FeeErr = errors.New("rpc down")
	_, err = f.svc.EstimateFee(context.Background(), "binance")
	assert.Error(t, err)
}

func TestGetTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, created.WalletID, []byte("pw"), recipient, "1", "ethereum")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, created.WalletID, []byte("pw"), recipient, "2", "avalanche")
	require.NoError(t, err)

	empty := " "
	assert.Len(t, f.svc.GetTransactions(model.HistoryFilter{Address: &empty, NetworkID: &empty}).Transactions, 2)

	avax := "avalanche"
	got := f.svc.GetTransactions(model.HistoryFilter{NetworkID: &avax}).Transactions
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Amount)

	other := "0x1111111111111111111111111111111111111111"
	assert.Empty(t, f.svc.GetTransactions(model.HistoryFilter{Address: &other}).Transactions)
}

func TestBindWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)
	require.NoError(t, f.svc.Session().Disconnect())

	assert.ErrorIs(t, f.svc.BindWallet(ctx, ""), model.ErrEmptyWalletID)
	assert.ErrorIs(t, f.svc.BindWallet(ctx, "ghost"), model.ErrNotFound)
	assert.False(t, f.svc.Session().IsConnected())

	require.NoError(t, f.svc.BindWallet(ctx, created.WalletID))
	assert.True(t, f.svc.Session().IsConnected())

	ids, err := f.svc.ListWallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{created.WalletID}, ids)
}

func TestRekey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("old"), model.AuthTypeCredentialed)
	require.NoError(t, err)

	_, err = f.svc.Rekey(ctx, created.WalletID, []byte("bad"), []byte("new"))
	assert.ErrorIs(t, err, model.ErrDecryptionFailed)

	newID, err := f.svc.Rekey(ctx, created.WalletID, []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.NotEqual(t, created.WalletID, newID)

	current, _ := f.svc.Session().CurrentWallet()
	assert.Equal(t, newID, current)

	unlocked, err := f.svc.Unlock(ctx, newID, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, abandonAddress, unlocked.Address)
	assert.Equal(t, model.AuthTypeCredentialed, unlocked.AuthType)

	// the old entry is gone, so the old password opens nothing
	_, err = f.svc.Unlock(ctx, created.WalletID, []byte("old"))
	assert.ErrorIs(t, err, model.ErrNotFound)

	ids, err := f.svc.ListWallets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{newID}, ids)
}

func TestSendWatchesUntilResolved(t *testing.T) {
	ctx := context.Background()
	f := newWatchingFixture(t, 5*time.Millisecond)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)

	resp, err := f.svc.Send(ctx, created.WalletID, []byte("pw"), recipient, "1", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, 1, f.svc.Watching())

	f.chain.SetReceipt(resp.TxID, &client.Receipt{Hash: resp.TxID, Success: true})

	require.Eventually(t, func() bool { return f.svc.Watching() == 0 }, time.Second, time.Millisecond)
	history := f.svc.GetTransactions(model.HistoryFilter{})
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, model.StatusCompleted, history.Transactions[0].Status)
}

func TestUnwatchLeavesTransactionPending(t *testing.T) {
	ctx := context.Background()
	f := newWatchingFixture(t, time.Hour)

	created, err := f.svc.ImportWallet(ctx, abandonPhrase, "", []byte("pw"), "")
	require.NoError(t, err)
	resp, err := f.svc.Send(ctx, created.WalletID, []byte("pw"), recipient, "1", "ethereum")
	require.NoError(t, err)

	stopped, err := f.svc.Unwatch(resp.TxID, "Ethereum")
	require.NoError(t, err)
	assert.True(t, stopped)
	require.Eventually(t, func() bool { return f.svc.Watching() == 0 }, time.Second, time.Millisecond)

	stopped, err = f.svc.Unwatch(resp.TxID, "ethereum")
	require.NoError(t, err)
	assert.False(t, stopped)

	_, err = f.svc.Unwatch(resp.TxID, "dogecoin")
	assert.ErrorIs(t, err, model.ErrUnsupportedNetwork)

	history := f.svc.GetTransactions(model.HistoryFilter{})
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, model.StatusPending, history.Transactions[0].Status)

	// watching again picks the transaction back up
	require.NoError(t, f.svc.Watch(resp.TxID, "ethereum"))
	assert.Equal(t, 1, f.svc.Watching())
}

func TestWatchWithoutPoller(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.svc.Watch("0xabc", "ethereum"))
	_, err := f.svc.Unwatch("0xabc", "ethereum")
	assert.Error(t, err)
	assert.Zero(t, f.svc.Watching())
}
