package mnemonic

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"
)

const (
	// WordCount is the only supported phrase length
	WordCount = 12
	// 128 bits of entropy encode to 12 words
	entropyBits = 128
)

// DerivationPath is the BIP-44 path of the first EVM account: m/44'/60'/0'/0/0
var DerivationPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// entropySource is the primary entropy path, replaced in tests
var entropySource = bip39.NewEntropy

// Identity is the key pair derived from a phrase or imported key
type Identity struct {
	Address    string // EIP-55 checksummed
	PrivateKey string // hex, no 0x prefix
}

// Generate returns a fresh 12-word phrase.
// When the primary entropy path fails it reads entropy from crypto/rand directly.
func Generate() (string, error) {
	phrase, err := fromEntropy(entropySource)
	if err == nil {
		return phrase, nil
	}

	phrase, fallbackErr := fromEntropy(readRandom)
	if fallbackErr != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w (fallback: %v)", err, fallbackErr)
	}
	return phrase, nil
}

func fromEntropy(source func(bits int) ([]byte, error)) (string, error) {
	entropy, err := source(entropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to read entropy: %w", err)
	}
	defer clear(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to encode mnemonic: %w", err)
	}

	// never hand out a phrase that does not validate
	if len(strings.Fields(phrase)) != WordCount || !bip39.IsMnemonicValid(phrase) {
		return "", fmt.Errorf("generated mnemonic failed validation")
	}
	return phrase, nil
}

func readRandom(bits int) ([]byte, error) {
	buf := make([]byte, bits/8)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Normalize lowercases the phrase and collapses whitespace
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// Validate checks word count, wordlist membership and checksum
func Validate(phrase string) error {
	phrase = Normalize(phrase)
	if len(strings.Fields(phrase)) != WordCount {
		return fmt.Errorf("%w: expected %d words", model.ErrInvalidMnemonic, WordCount)
	}
	if !bip39.IsMnemonicValid(phrase) {
		return fmt.Errorf("%w: checksum or wordlist mismatch", model.ErrInvalidMnemonic)
	}
	return nil
}

// DeriveIdentity derives the EVM account at DerivationPath. Deterministic.
func DeriveIdentity(phrase string) (*Identity, error) {
	phrase = Normalize(phrase)
	if err := Validate(phrase); err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(phrase, "")
	defer clear(seed)

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	for _, idx := range DerivationPath {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key: %w", err)
		}
	}

	ecPriv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	raw := ecPriv.Serialize()
	defer clear(raw)

	return ImportPrivateKey(hex.EncodeToString(raw))
}

// ImportPrivateKey builds an identity from a raw secp256k1 key (hex, optional 0x)
func ImportPrivateKey(privateKeyHex string) (*Identity, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")

	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPrivateKey, err)
	}

	return &Identity{
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(privateKey)),
	}, nil
}

// DeriveSolanaKey derives the ed25519 key solana-keygen recovers from a phrase
// without a derivation path: the first 32 bytes of the BIP-39 seed.
func DeriveSolanaKey(phrase string) (solana.PrivateKey, error) {
	phrase = Normalize(phrase)
	if err := Validate(phrase); err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(phrase, "")
	defer clear(seed)

	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])), nil
}
