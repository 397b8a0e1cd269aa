package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// FailureKind tells decrypt failures apart for logs and tests
type FailureKind int

const (
	KindWrongPassword FailureKind = iota + 1
	KindCorruptCiphertext
	KindMalformedPayload
)

func (k FailureKind) String() string {
	switch k {
	case KindWrongPassword:
		return "wrong_password"
	case KindCorruptCiphertext:
		return "corrupt_ciphertext"
	case KindMalformedPayload:
		return "malformed_payload"
	default:
		return "unknown"
	}
}

// DecryptError is returned by Decrypt. Every kind matches model.ErrDecryptionFailed.
type DecryptError struct {
	Kind FailureKind
	Err  error
}

func (e *DecryptError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%s)", model.ErrDecryptionFailed, e.Kind)
	}
	return fmt.Sprintf("%s (%s): %v", model.ErrDecryptionFailed, e.Kind, e.Err)
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, model.ErrDecryptionFailed) hold
func (e *DecryptError) Is(target error) bool {
	return target == model.ErrDecryptionFailed
}

// Validator is implemented by payloads that can check their own required fields
type Validator interface {
	Validate() error
}

// Decrypt opens blob with password and unmarshals the payload into out.
// password must be []byte for security (caller should zero it after use)
func (c *Codec) Decrypt(blob *model.EncryptedBlob, password []byte, out any) error {
	if blob == nil || blob.Version != BlobVersion {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: fmt.Errorf("unsupported blob version")}
	}
	if !validKDF(blob.KDF) {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: fmt.Errorf("invalid kdf params")}
	}

	// Decode salt, nonce and ciphertext
	salt, err := base64.StdEncoding.DecodeString(blob.Salt)
	if err != nil {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: fmt.Errorf("failed to decode salt: %w", err)}
	}

	nonce, err := base64.StdEncoding.DecodeString(blob.Nonce)
	if err != nil || len(nonce) != nonceLen {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: fmt.Errorf("failed to decode nonce")}
	}

	ciphertext, err := base64.StdEncoding.DecodeString(blob.CipherText)
	if err != nil {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: fmt.Errorf("failed to decode ciphertext: %w", err)}
	}

	aesGCM, err := newGCM(password, salt, blob.KDF)
	if err != nil {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: err}
	}

	// GCM tag check fails for a wrong password
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return &DecryptError{Kind: KindWrongPassword}
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var env envelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return &DecryptError{Kind: KindCorruptCiphertext, Err: fmt.Errorf("failed to unmarshal envelope: %w", err)}
	}
	if env.Version != PayloadVersion || len(env.Payload) == 0 || bytes.Equal(env.Payload, []byte("null")) {
		return &DecryptError{Kind: KindMalformedPayload, Err: fmt.Errorf("missing payload or version")}
	}

	if err := json.Unmarshal(env.Payload, out); err != nil {
		return &DecryptError{Kind: KindMalformedPayload, Err: fmt.Errorf("failed to unmarshal payload: %w", err)}
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return &DecryptError{Kind: KindMalformedPayload, Err: err}
		}
	}

	return nil
}

// validKDF bounds the stored scrypt parameters before any key derivation runs
func validKDF(kdf model.KDFParams) bool {
	switch {
	case kdf.N <= 1 || kdf.N > MaxScryptN || kdf.N&(kdf.N-1) != 0:
		return false
	case kdf.R < 1 || kdf.R > maxScryptR:
		return false
	case kdf.P < 1 || kdf.P > maxScryptP:
		return false
	default:
		return kdf.KeyLen == scryptKeyLen
	}
}
