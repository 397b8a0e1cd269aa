package storage

// Provider is the key-value persistence surface shared by the wallet store,
// the transaction ledger and the session binding.
// Get returns nil, nil for a missing key.
type Provider interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	// IteratePrefix walks keys with prefix in ascending key order until callback returns false
	IteratePrefix(prefix []byte, callback func(key, value []byte) bool) error
	Close() error
}

// Key prefixes
const (
	WalletPrefix      = "wallets/"
	TransactionPrefix = "transactions/"
	SessionPrefix     = "session/"
	ConfirmedPrefix   = "confirmed/"
)
