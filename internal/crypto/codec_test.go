package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secret struct {
	Address string `json:"address"`
	Key     string `json:"key"`
}

func (s *secret) Validate() error {
	if s.Address == "" {
		return errors.New("address is required")
	}
	return nil
}

func testCodec() *Codec {
	return NewCodec(Params{N: 1 << 4})
}

// seal encrypts raw plaintext bytes the same way Encrypt does, skipping the envelope
func seal(t *testing.T, c *Codec, password, plaintext []byte) *model.EncryptedBlob {
	t.Helper()
	salt := make([]byte, saltLen)
	nonce := make([]byte, nonceLen)
	_, err := rand.Read(salt)
	require.NoError(t, err)
	_, err = rand.Read(nonce)
	require.NoError(t, err)

	aead, err := newGCM(password, salt, c.kdf)
	require.NoError(t, err)

	return &model.EncryptedBlob{
		Version:    BlobVersion,
		KDF:        c.kdf,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plaintext, nil)),
	}
}

func kindOf(t *testing.T, err error) FailureKind {
	t.Helper()
	var de *DecryptError
	require.ErrorAs(t, err, &de)
	return de.Kind
}

func TestRoundTrip(t *testing.T) {
	c := testCodec()
	in := &secret{Address: "0xabc", Key: "deadbeef"}

	blob, err := c.Encrypt(in, []byte("Secr3t!123"))
	require.NoError(t, err)
	assert.Equal(t, BlobVersion, blob.Version)
	assert.NotContains(t, blob.CipherText, "deadbeef")

	var out secret
	require.NoError(t, c.Decrypt(blob, []byte("Secr3t!123"), &out))
	assert.Equal(t, *in, out)
}

func TestFreshSaltAndNonce(t *testing.T) {
	c := testCodec()
	a, err := c.Encrypt(&secret{Address: "x"}, []byte("pw"))
	require.NoError(t, err)
	b, err := c.Encrypt(&secret{Address: "x"}, []byte("pw"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.CipherText, b.CipherText)
}

func TestWrongPassword(t *testing.T) {
	c := testCodec()
	blob, err := c.Encrypt(&secret{Address: "0xabc"}, []byte("Secr3t!123"))
	require.NoError(t, err)

	for _, pw := range []string{"wrong", "", "Secr3t!124"} {
		var out secret
		err := c.Decrypt(blob, []byte(pw), &out)
		require.Error(t, err, pw)
		assert.ErrorIs(t, err, model.ErrDecryptionFailed)
		assert.Equal(t, KindWrongPassword, kindOf(t, err))
		assert.Empty(t, out.Address)
	}
}

func TestCorruptCiphertext(t *testing.T) {
	c := testCodec()
	pw := []byte("pw")

	// not JSON after a successful open
	blob := seal(t, c, pw, []byte("\x00\x01garbage"))
	err := c.Decrypt(blob, pw, &secret{})
	assert.ErrorIs(t, err, model.ErrDecryptionFailed)
	assert.Equal(t, KindCorruptCiphertext, kindOf(t, err))

	// broken envelope encoding
	good, err := c.Encrypt(&secret{Address: "a"}, pw)
	require.NoError(t, err)
	bad := *good
	bad.Nonce = "!!not base64!!"
	err = c.Decrypt(&bad, pw, &secret{})
	assert.Equal(t, KindCorruptCiphertext, kindOf(t, err))

	bad = *good
	bad.Version = "99"
	err = c.Decrypt(&bad, pw, &secret{})
	assert.Equal(t, KindCorruptCiphertext, kindOf(t, err))

	assert.Equal(t, KindCorruptCiphertext, kindOf(t, c.Decrypt(nil, pw, &secret{})))
}

func TestDecryptRejectsUnboundedKDF(t *testing.T) {
	c := testCodec()
	pw := []byte("pw")
	good, err := c.Encrypt(&secret{Address: "a"}, pw)
	require.NoError(t, err)

	cases := map[string]func(*model.KDFParams){
		"huge n":     func(k *model.KDFParams) { k.N = 1 << 30 },
		"n not pow2": func(k *model.KDFParams) { k.N = 1000 },
		"n one":      func(k *model.KDFParams) { k.N = 1 },
		"zero r":     func(k *model.KDFParams) { k.R = 0 },
		"huge r":     func(k *model.KDFParams) { k.R = 1 << 20 },
		"zero p":     func(k *model.KDFParams) { k.P = 0 },
		"huge p":     func(k *model.KDFParams) { k.P = 1 << 20 },
		"short key":  func(k *model.KDFParams) { k.KeyLen = 16 },
		"negative n": func(k *model.KDFParams) { k.N = -(1 << 4) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			bad := *good
			mutate(&bad.KDF)
			err := c.Decrypt(&bad, pw, &secret{})
			assert.ErrorIs(t, err, model.ErrDecryptionFailed)
			assert.Equal(t, KindCorruptCiphertext, kindOf(t, err))
		})
	}

	var out secret
	require.NoError(t, c.Decrypt(good, pw, &out))
	assert.Equal(t, "a", out.Address)
}

func TestMalformedPayload(t *testing.T) {
	c := testCodec()
	pw := []byte("pw")

	// valid envelope, payload misses the required address
	blob := seal(t, c, pw, []byte(`{"payload":{"key":"k"},"timestamp":1,"version":"1.0"}`))
	err := c.Decrypt(blob, pw, &secret{})
	assert.ErrorIs(t, err, model.ErrDecryptionFailed)
	assert.Equal(t, KindMalformedPayload, kindOf(t, err))

	// envelope without payload
	blob = seal(t, c, pw, []byte(`{"timestamp":1,"version":"1.0"}`))
	assert.Equal(t, KindMalformedPayload, kindOf(t, c.Decrypt(blob, pw, &secret{})))

	// payload of the wrong shape
	blob = seal(t, c, pw, []byte(`{"payload":[1,2],"timestamp":1,"version":"1.0"}`))
	assert.Equal(t, KindMalformedPayload, kindOf(t, c.Decrypt(blob, pw, &secret{})))
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "wrong_password", KindWrongPassword.String())
	assert.Equal(t, "corrupt_ciphertext", KindCorruptCiphertext.String())
	assert.Equal(t, "malformed_payload", KindMalformedPayload.String())
}
