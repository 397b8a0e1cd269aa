package network

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/internal/client"
	"github.com/AlexZinkM/multichain-wallet/internal/client/clienttest"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countingDialer(count *int, mu *sync.Mutex) Dialer {
	return func(ctx context.Context, n model.Network) (client.ChainClient, error) {
		mu.Lock()
		defer mu.Unlock()
		*count++
		return &clienttest.Chain{}, nil
	}
}

func TestResolve(t *testing.T) {
	r := NewRegistry(nil, nil, zap.NewNop())

	n, err := r.Resolve("Ethereum")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.ChainID)
	assert.Equal(t, "ETH", n.Symbol)
	assert.Equal(t, 18, n.Decimals)

	n, err = r.Resolve(" SOLANA ")
	require.NoError(t, err)
	assert.Equal(t, model.FamilySolana, n.Family)
	assert.Equal(t, 9, n.Decimals)

	_, err = r.Resolve("dogecoin")
	assert.ErrorIs(t, err, model.ErrUnsupportedNetwork)
}

func TestList(t *testing.T) {
	r := NewRegistry(map[string]string{Polygon: "http://localhost:8545"}, nil, zap.NewNop())

	ids := make([]string, 0)
	for _, n := range r.List() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{Ethereum, Binance, Polygon, Avalanche, Solana}, ids)

	n, err := r.Resolve(Polygon)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", n.Endpoint)
	assert.Equal(t, int64(137), n.ChainID)
}

func TestChainClientMemoized(t *testing.T) {
	var (
		count int
		mu    sync.Mutex
	)
	r := NewRegistry(nil, countingDialer(&count, &mu), zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.ChainClient(ctx, "ETHEREUM")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	a, err := r.ChainClient(ctx, "ethereum")
	require.NoError(t, err)
	b, err := r.ChainClient(ctx, "Ethereum")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, count)

	_, err = r.ChainClient(ctx, "solana")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = r.ChainClient(ctx, "tron")
	assert.ErrorIs(t, err, model.ErrUnsupportedNetwork)
	assert.Equal(t, 2, count)
}

func TestChainClientDialFailureNotCached(t *testing.T) {
	calls := 0
	r := NewRegistry(nil, func(ctx context.Context, n model.Network) (client.ChainClient, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return &clienttest.Chain{}, nil
	}, zap.NewNop())

	_, err := r.ChainClient(context.Background(), Binance)
	assert.Error(t, err)

	c, err := r.ChainClient(context.Background(), Binance)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestExplorerURLs(t *testing.T) {
	r := NewRegistry(nil, nil, zap.NewNop())

	u, err := r.TransactionURL("binance", "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "https://bscscan.com/tx/0xabc", u)

	u, err = r.AddressURL("solana", "11111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "https://explorer.solana.com/address/11111111111111111111111111111111", u)

	_, err = r.TransactionURL("nope", "0xabc")
	assert.ErrorIs(t, err, model.ErrUnsupportedNetwork)
}

func TestAmounts(t *testing.T) {
	r := NewRegistry(nil, nil, zap.NewNop())

	s, err := r.FormatAmount("avalanche", big.NewInt(2_500_000_000_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, "2.5000 AVAX", s)

	v, err := r.ParseAmount("solana", "0.5")
	require.NoError(t, err)
	assert.Equal(t, "500000000", v.String())

	_, err = r.ParseAmount("solana", "0.0000000001")
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}
