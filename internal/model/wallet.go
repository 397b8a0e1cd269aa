package model

import "time"

// AuthType is how the user entered the dashboard
type AuthType string

const (
	AuthTypeCredentialed  AuthType = "credentialed"   // signed in through the identity provider
	AuthTypePhraseSecured AuthType = "phrase-secured" // secured by the recovery phrase only
)

// Valid reports whether t is a known auth type
func (t AuthType) Valid() bool {
	return t == AuthTypeCredentialed || t == AuthTypePhraseSecured
}

// WalletRecord represents decrypted wallet data.
// It only exists in plaintext in memory while creating, importing or unlocking a wallet.
type WalletRecord struct {
	ID         string    `json:"id,omitempty"`
	Address    string    `json:"address"`
	PrivateKey string    `json:"privateKey"` // hex, no 0x prefix
	Mnemonic   string    `json:"mnemonic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	AuthType   AuthType  `json:"authType"`
}

// Wipe drops secret material from the record
func (r *WalletRecord) Wipe() {
	if r == nil {
		return
	}
	r.PrivateKey = ""
	r.Mnemonic = ""
}

// EncryptedBlob is the at-rest form of a wallet record
type EncryptedBlob struct {
	Version    string    `json:"version"`
	KDF        KDFParams `json:"kdf"`
	Salt       string    `json:"salt"`
	Nonce      string    `json:"nonce"`
	CipherText string    `json:"cipherText"`
}

// KDFParams are the scrypt parameters used to derive the blob key
type KDFParams struct {
	N      int `json:"n"`
	R      int `json:"r"`
	P      int `json:"p"`
	KeyLen int `json:"keyLen"`
}

// SeedWord is one word of a recovery phrase with its 1-indexed position
type SeedWord struct {
	Position int    `json:"position"`
	Word     string `json:"word"`
}

// CreateWalletRequest represents request for POST /wallets
type CreateWalletRequest struct {
	Password string   `json:"password" binding:"required"`
	AuthType AuthType `json:"authType,omitempty"`
}

// CreateWalletResponse represents response for POST /wallets.
// The mnemonic is shown once so the user can record it.
type CreateWalletResponse struct {
	WalletID  string     `json:"walletId"`
	Address   string     `json:"address"`
	Mnemonic  string     `json:"mnemonic"`
	Challenge []SeedWord `json:"challenge"`
}

// ImportWalletRequest represents request for POST /wallets/import
type ImportWalletRequest struct {
	Mnemonic   string   `json:"mnemonic,omitempty"`
	PrivateKey string   `json:"privateKey,omitempty"`
	Password   string   `json:"password" binding:"required"`
	AuthType   AuthType `json:"authType,omitempty"`
}

// UnlockWalletRequest represents request for POST /wallets/{id}/unlock
type UnlockWalletRequest struct {
	Password string `json:"password" binding:"required"`
}

// WalletResponse represents a wallet without secrets
type WalletResponse struct {
	WalletID string   `json:"walletId"`
	Address  string   `json:"address"`
	AuthType AuthType `json:"authType"`
	QR       string   `json:"QR,omitempty"` // base64 PNG of the address
}

// VerifyChallengeRequest represents request for POST /wallets/{id}/challenge
type VerifyChallengeRequest struct {
	Password string         `json:"password" binding:"required"`
	Words    map[int]string `json:"words"`
}

// VerifyPartialRequest represents request for POST /wallets/{id}/recovery-check
type VerifyPartialRequest struct {
	Password string `json:"password" binding:"required"`
	Partial  string `json:"partial"` // 4 space separated words
}

// VerifyResponse represents the result of a phrase check
type VerifyResponse struct {
	Valid bool `json:"valid"`
}
