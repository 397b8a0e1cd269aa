package network

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/AlexZinkM/multichain-wallet/internal/client"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"go.uber.org/zap"
)

// Supported network ids
const (
	Ethereum  = "ethereum"
	Binance   = "binance"
	Polygon   = "polygon"
	Avalanche = "avalanche"
	Solana    = "solana"
)

// Defaults returns the built-in network descriptors in display order
func Defaults() []model.Network {
	return []model.Network{
		{ID: Ethereum, Name: "Ethereum", ChainID: 1, Symbol: "ETH", Decimals: 18,
			Endpoint: "https://mainnet.infura.io/v3/YOUR_INFURA_KEY", ExplorerBaseURL: "https://etherscan.io", Family: model.FamilyEVM},
		{ID: Binance, Name: "Binance Smart Chain", ChainID: 56, Symbol: "BNB", Decimals: 18,
			Endpoint: "https://bsc-dataseed.binance.org/", ExplorerBaseURL: "https://bscscan.com", Family: model.FamilyEVM},
		{ID: Polygon, Name: "Polygon", ChainID: 137, Symbol: "MATIC", Decimals: 18,
			Endpoint: "https://polygon-rpc.com", ExplorerBaseURL: "https://polygonscan.com", Family: model.FamilyEVM},
		{ID: Avalanche, Name: "Avalanche", ChainID: 43114, Symbol: "AVAX", Decimals: 18,
			Endpoint: "https://api.avax.network/ext/bc/C/rpc", ExplorerBaseURL: "https://snowtrace.io", Family: model.FamilyEVM},
		{ID: Solana, Name: "Solana", Symbol: "SOL", Decimals: 9,
			Endpoint: "https://api.mainnet-beta.solana.com", ExplorerBaseURL: "https://explorer.solana.com", Family: model.FamilySolana},
	}
}

// Dialer builds a chain client for a network
type Dialer func(ctx context.Context, n model.Network) (client.ChainClient, error)

// DefaultDialer dials EVM networks with ethclient and Solana with the solana rpc client
func DefaultDialer(logger *zap.Logger) Dialer {
	return func(ctx context.Context, n model.Network) (client.ChainClient, error) {
		switch n.Family {
		case model.FamilyEVM:
			return client.DialEVM(ctx, n.Endpoint, n.ChainID, logger.With(zap.String("network", n.ID)))
		case model.FamilySolana:
			return client.NewSolanaClient(n.Endpoint, logger.With(zap.String("network", n.ID))), nil
		default:
			return nil, fmt.Errorf("%w: unknown chain family %q", model.ErrUnsupportedNetwork, n.Family)
		}
	}
}

// Registry resolves network ids to descriptors and memoized chain clients.
// Clients are created on first use and kept for the registry's lifetime.
type Registry struct {
	networks map[string]model.Network
	order    []string
	dial     Dialer
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[string]client.ChainClient
}

// NewRegistry creates a registry over the default descriptors.
// endpoints overrides the RPC endpoint per network id; empty values are ignored.
func NewRegistry(endpoints map[string]string, dial Dialer, logger *zap.Logger) *Registry {
	r := &Registry{
		networks: make(map[string]model.Network),
		dial:     dial,
		logger:   logger,
		clients:  make(map[string]client.ChainClient),
	}

	for _, n := range Defaults() {
		if ep := endpoints[n.ID]; ep != "" {
			n.Endpoint = ep
		}
		r.networks[n.ID] = n
		r.order = append(r.order, n.ID)
	}
	return r
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Resolve returns the descriptor for id, case-insensitively
func (r *Registry) Resolve(id string) (model.Network, error) {
	n, ok := r.networks[normalizeID(id)]
	if !ok {
		return model.Network{}, fmt.Errorf("%w: %s", model.ErrUnsupportedNetwork, id)
	}
	return n, nil
}

// List returns all descriptors in display order
func (r *Registry) List() []model.Network {
	out := make([]model.Network, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.networks[id])
	}
	return out
}

// ChainClient returns the cached client for id, dialing it on first use
func (r *Registry) ChainClient(ctx context.Context, id string) (client.ChainClient, error) {
	n, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[n.ID]; ok {
		return c, nil
	}

	c, err := r.dial(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", n.ID, err)
	}
	r.clients[n.ID] = c

	r.logger.Debug("Chain client cached", zap.String("network", n.ID))
	return c, nil
}

// TransactionURL links a transaction on the network's explorer
func (r *Registry) TransactionURL(id, hash string) (string, error) {
	n, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/tx/%s", n.ExplorerBaseURL, hash), nil
}

// AddressURL links an address on the network's explorer
func (r *Registry) AddressURL(id, address string) (string, error) {
	n, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/address/%s", n.ExplorerBaseURL, address), nil
}

// FormatAmount renders base units with the network's symbol
func (r *Registry) FormatAmount(id string, baseUnits *big.Int) (string, error) {
	n, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return common.FormatAmount(baseUnits, n.Decimals, n.Symbol), nil
}

// ParseAmount converts a decimal amount to the network's base units
func (r *Registry) ParseAmount(id, amount string) (*big.Int, error) {
	n, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	v, err := common.ToBaseUnits(amount, n.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidAmount, err)
	}
	return v, nil
}
