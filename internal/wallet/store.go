package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxIDAttempts = 3

// Store keeps password-encrypted wallet records keyed by generated ids
type Store struct {
	db     storage.Provider
	codec  *crypto.Codec
	logger *zap.Logger
	newID  func() string
}

// NewStore creates a wallet store over db
func NewStore(db storage.Provider, codec *crypto.Codec, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		codec:  codec,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func walletKey(id string) []byte {
	return []byte(storage.WalletPrefix + id)
}

func confirmedKey(id string) []byte {
	return []byte(storage.ConfirmedPrefix + id)
}

// Persist encrypts record under password and stores it under a fresh id.
// An existing id is never overwritten.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Persist(ctx context.Context, record *model.WalletRecord, password []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if record == nil || record.Address == "" {
		return "", fmt.Errorf("%w: address is required", model.ErrCorruptRecord)
	}

	id, err := s.freshID()
	if err != nil {
		return "", err
	}

	rec := *record
	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.AuthType == "" {
		rec.AuthType = model.AuthTypePhraseSecured
	}

	blob, err := s.codec.Encrypt(&rec, password)
	rec.Wipe()
	if err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("failed to marshal wallet blob: %w", err)
	}

	if err := s.db.Put(walletKey(id), data); err != nil {
		return "", fmt.Errorf("%w: failed to write wallet: %v", model.ErrStorage, err)
	}

	s.logger.Info("Wallet persisted", zap.String("wallet_id", id), zap.String("address", rec.Address))
	return id, nil
}

func (s *Store) freshID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		exists, err := s.db.Has(walletKey(id))
		if err != nil {
			return "", fmt.Errorf("%w: failed to check wallet id: %v", model.ErrStorage, err)
		}
		if !exists {
			return id, nil
		}
		s.logger.Warn("Wallet id collision, regenerating", zap.String("wallet_id", id))
	}
	return "", fmt.Errorf("failed to allocate a unique wallet id")
}

// Retrieve loads and decrypts the wallet stored under id.
// The stored blob is never modified, whatever the outcome.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Retrieve(ctx context.Context, id string, password []byte) (*model.WalletRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, model.ErrEmptyWalletID
	}

	data, err := s.db.Get(walletKey(id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read wallet: %v", model.ErrStorage, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	var blob model.EncryptedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal wallet blob: %v", model.ErrCorruptRecord, err)
	}

	var rec model.WalletRecord
	if err := s.codec.Decrypt(&blob, password, &rec); err != nil {
		var de *crypto.DecryptError
		if errors.As(err, &de) {
			s.logger.Debug("Wallet decrypt failed", zap.String("wallet_id", id), zap.Stringer("kind", de.Kind))
		}
		return nil, err
	}

	if rec.Address == "" {
		rec.Wipe()
		return nil, fmt.Errorf("%w: empty address", model.ErrCorruptRecord)
	}
	rec.ID = id

	return &rec, nil
}

// Exists reports whether a wallet is stored under id
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := s.db.Has(walletKey(id))
	if err != nil {
		return false, fmt.Errorf("%w: failed to check wallet: %v", model.ErrStorage, err)
	}
	return ok, nil
}

// ListIDs returns all stored wallet ids, sorted. Nothing is decrypted.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, 4)
	err := s.db.IteratePrefix([]byte(storage.WalletPrefix), func(key, _ []byte) bool {
		ids = append(ids, strings.TrimPrefix(string(key), storage.WalletPrefix))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list wallets: %v", model.ErrStorage, err)
	}

	sort.Strings(ids)
	return ids, nil
}

// Delete removes the wallet stored under id together with its confirmation marker
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return model.ErrEmptyWalletID
	}

	ok, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	if err := s.db.Delete(walletKey(id)); err != nil {
		return fmt.Errorf("%w: failed to delete wallet: %v", model.ErrStorage, err)
	}
	if err := s.db.Delete(confirmedKey(id)); err != nil {
		s.logger.Warn("Failed to drop confirmation marker", zap.String("wallet_id", id), zap.Error(err))
	}

	s.logger.Info("Wallet deleted", zap.String("wallet_id", id))
	return nil
}

// MarkConfirmed records that the recovery phrase of id was confirmed
func (s *Store) MarkConfirmed(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Put(confirmedKey(id), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
		return fmt.Errorf("%w: failed to mark wallet confirmed: %v", model.ErrStorage, err)
	}
	return nil
}

// Confirmed reports whether the recovery phrase of id was confirmed
func (s *Store) Confirmed(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := s.db.Has(confirmedKey(id))
	if err != nil {
		return false, fmt.Errorf("%w: failed to check confirmation: %v", model.ErrStorage, err)
	}
	return ok, nil
}
