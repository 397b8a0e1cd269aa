package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for local wallet
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) - works on phones and desktops alike
	// while keeping brute-force attacks extremely expensive.
	DefaultScryptN = 1 << 18
	// MaxScryptN caps the cost a stored blob may ask for (~1GB RAM)
	MaxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12

	// BlobVersion tags the envelope layout
	BlobVersion = "1"
	// PayloadVersion tags the plaintext layout
	PayloadVersion = "1.0"
)

// Params tunes key derivation
type Params struct {
	N int // scrypt cost, power of two
}

// Codec encrypts wallet payloads under a password
type Codec struct {
	kdf model.KDFParams
	now func() time.Time
}

// NewCodec creates a codec. Zero params fall back to DefaultScryptN.
func NewCodec(p Params) *Codec {
	n := p.N
	if n == 0 {
		n = DefaultScryptN
	}
	return &Codec{
		kdf: model.KDFParams{N: n, R: scryptR, P: scryptP, KeyLen: scryptKeyLen},
		now: time.Now,
	}
}

// envelope wraps the payload with a creation timestamp and format version
type envelope struct {
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Version   string          `json:"version"`
}

// Encrypt serializes payload and encrypts it under password.
// password must be []byte for security (caller should zero it after use)
func (c *Codec) Encrypt(payload any, password []byte) (*model.EncryptedBlob, error) {
	// Serialize payload
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	defer clear(raw)

	plaintext, err := json.Marshal(envelope{
		Payload:   raw,
		Timestamp: c.now().UnixMilli(),
		Version:   PayloadVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, c.kdf)
	if err != nil {
		return nil, err
	}

	// Encrypt
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.EncryptedBlob{
		Version:    BlobVersion,
		KDF:        c.kdf,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// newGCM derives the key from password and builds the AEAD
func newGCM(password, salt []byte, kdf model.KDFParams) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, kdf.N, kdf.R, kdf.P, kdf.KeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
