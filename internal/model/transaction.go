package model

import "time"

// TransactionKind transaction kind
type TransactionKind string

const (
	TransactionKindSend    TransactionKind = "send"
	TransactionKindReceive TransactionKind = "receive"
	TransactionKindSwap    TransactionKind = "swap"
)

// TransactionStatus transaction status
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Resolved reports whether the status is terminal
func (s TransactionStatus) Resolved() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TransactionRecord represents a submitted transaction in the local ledger
type TransactionRecord struct {
	Hash        string            `json:"hash"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Amount      string            `json:"amount"` // decimal, native units
	NetworkID   string            `json:"network"`
	Kind        TransactionKind   `json:"type"`
	CreatedAt   time.Time         `json:"timestamp"`
	Status      TransactionStatus `json:"status"`
	Fee         string            `json:"fee,omitempty"`
	BlockNumber uint64            `json:"blockNumber,omitempty"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty"`
	ExplorerURL string            `json:"explorerUrl,omitempty"`
}

// HistoryFilter narrows GET /transactions
type HistoryFilter struct {
	Address   *string // sender
	Recipient *string
	NetworkID *string
}

// PayRequest represents request for POST /wallets/{id}/pay
type PayRequest struct {
	Password  string `json:"password" binding:"required"`
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Network   string `json:"network" binding:"required"`
}

// PayResponse represents response for POST /wallets/{id}/pay
type PayResponse struct {
	TxID        string            `json:"txId"`
	Status      TransactionStatus `json:"status"`
	ExplorerURL string            `json:"explorerUrl"`
}

// StatusResponse represents response for GET /transactions/{network}/{hash}/status
type StatusResponse struct {
	Hash   string            `json:"hash"`
	Status TransactionStatus `json:"status"`
}

// WatchResponse represents response for POST and DELETE /transactions/{network}/{hash}/watch
type WatchResponse struct {
	Hash     string `json:"hash"`
	Network  string `json:"network"`
	Watching bool   `json:"watching"`
	Stopped  bool   `json:"stopped,omitempty"` // a running watch was cancelled
}

// LogResponse represents response for GET /transactions
type LogResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
}
