package model

// ChainFamily groups networks that share a client implementation
type ChainFamily string

const (
	FamilyEVM    ChainFamily = "evm"
	FamilySolana ChainFamily = "solana"
)

// Network describes a supported blockchain network
type Network struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ChainID         int64       `json:"chainId"` // 0 for non-EVM networks
	Symbol          string      `json:"symbol"`
	Decimals        int         `json:"decimals"`
	Endpoint        string      `json:"endpoint"`
	ExplorerBaseURL string      `json:"explorer"`
	Family          ChainFamily `json:"family"`
}

// BalanceResponse represents response for GET /wallets/{id}/balance
type BalanceResponse struct {
	Address   string `json:"address"`
	Network   string `json:"network"`
	Symbol    string `json:"symbol"`
	Balance   string `json:"balance"`
	Display   string `json:"display"`
	Explorer  string `json:"explorerUrl,omitempty"`
	USDRate   string `json:"usdRate,omitempty"`
	USDAmount string `json:"usdAmount,omitempty"`
}

// FeeResponse represents response for GET /networks/{id}/fee
type FeeResponse struct {
	Network     string `json:"network"`
	Fee         string `json:"fee"`
	MaxFee      string `json:"maxFeePerGas"`
	PriorityFee string `json:"maxPriorityFeePerGas"`
	GasLimit    uint64 `json:"gasLimit"`
}

// BalanceRequest represents request for POST /wallets/{id}/balance.
// The wallet must be unlocked to learn its per-network address.
type BalanceRequest struct {
	Password string `json:"password" binding:"required"`
	Network  string `json:"network" binding:"required"`
}

// NetworksResponse represents response for GET /networks
type NetworksResponse struct {
	Networks []Network `json:"networks"`
}
