package custody

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/mnemonic"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var errNoSecret = errors.New("either mnemonic or privateKey is required")

// CreateWallet generates a new phrase-backed wallet, stores it and makes it the active wallet.
// The phrase is returned once together with the words the user must confirm.
// password must be []byte for security (caller should zero it after use)
func (s *Service) CreateWallet(ctx context.Context, password []byte, authType model.AuthType) (*model.CreateWalletResponse, error) {
	phrase, err := mnemonic.Generate()
	if err != nil {
		return nil, err
	}

	identity, err := mnemonic.DeriveIdentity(phrase)
	if err != nil {
		return nil, err
	}

	challenge, err := mnemonic.BuildChallenge(phrase)
	if err != nil {
		return nil, err
	}

	record := &model.WalletRecord{
		Address:    identity.Address,
		PrivateKey: identity.PrivateKey,
		Mnemonic:   phrase,
		AuthType:   authType,
	}
	defer record.Wipe()

	id, err := s.save(ctx, record, password)
	if err != nil {
		return nil, err
	}

	return &model.CreateWalletResponse{
		WalletID:  id,
		Address:   identity.Address,
		Mnemonic:  phrase,
		Challenge: challenge,
	}, nil
}

// ImportWallet stores a wallet recovered from a phrase, or from a raw private key
// when no phrase is given, and makes it the active wallet.
// password must be []byte for security (caller should zero it after use)
func (s *Service) ImportWallet(ctx context.Context, phrase, privateKey string, password []byte, authType model.AuthType) (*model.WalletResponse, error) {
	var (
		identity *mnemonic.Identity
		err      error
	)

	record := &model.WalletRecord{AuthType: authType}
	defer record.Wipe()

	switch {
	case strings.TrimSpace(phrase) != "":
		phrase = mnemonic.Normalize(phrase)
		identity, err = mnemonic.DeriveIdentity(phrase)
		record.Mnemonic = phrase
	case strings.TrimSpace(privateKey) != "":
		identity, err = mnemonic.ImportPrivateKey(privateKey)
	default:
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidMnemonic, errNoSecret)
	}
	if err != nil {
		return nil, err
	}

	record.Address = identity.Address
	record.PrivateKey = identity.PrivateKey

	id, err := s.save(ctx, record, password)
	if err != nil {
		return nil, err
	}

	return s.walletResponse(id, record.Address, record.AuthType), nil
}

// save persists record and binds it to the session
func (s *Service) save(ctx context.Context, record *model.WalletRecord, password []byte) (string, error) {
	if record.AuthType == "" {
		record.AuthType = s.session.AuthType()
	}
	if !record.AuthType.Valid() {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidAuthType, record.AuthType)
	}

	id, err := s.store.Persist(ctx, record, password)
	if err != nil {
		return "", err
	}

	if err := s.session.SetAuthType(record.AuthType); err != nil {
		return "", err
	}
	if err := s.session.BindWallet(id); err != nil {
		return "", err
	}
	return id, nil
}

// Unlock decrypts the wallet to prove the password and makes it the active wallet.
// password must be []byte for security (caller should zero it after use)
func (s *Service) Unlock(ctx context.Context, id string, password []byte) (*model.WalletResponse, error) {
	record, err := s.store.Retrieve(ctx, id, password)
	if err != nil {
		return nil, err
	}
	defer record.Wipe()

	if err := s.session.SetAuthType(record.AuthType); err != nil {
		return nil, err
	}
	if err := s.session.BindWallet(id); err != nil {
		return nil, err
	}

	s.logger.Info("Wallet unlocked",
		zap.String("wallet_id", id),
		zap.String("address", common.ShortAddress(record.Address, 6, 4)))
	return s.walletResponse(id, record.Address, record.AuthType), nil
}

// VerifyChallenge checks the words the user confirmed after creating the wallet.
// The challenge is consumed by the first successful check; later calls return ErrChallengeUsed.
// Wallets imported from a private key have no phrase and never verify.
func (s *Service) VerifyChallenge(ctx context.Context, id string, password []byte, words map[int]string) (bool, error) {
	record, err := s.store.Retrieve(ctx, id, password)
	if err != nil {
		return false, err
	}
	defer record.Wipe()

	if record.Mnemonic == "" {
		return false, nil
	}

	confirmed, err := s.store.Confirmed(ctx, id)
	if err != nil {
		return false, err
	}
	if confirmed {
		return false, model.ErrChallengeUsed
	}

	challenge, err := mnemonic.BuildChallenge(record.Mnemonic)
	if err != nil {
		return false, err
	}
	if !mnemonic.VerifyChallenge(challenge, words) {
		return false, nil
	}

	if err := s.store.MarkConfirmed(ctx, id); err != nil {
		return false, err
	}
	s.logger.Info("Recovery phrase confirmed", zap.String("wallet_id", id))
	return true, nil
}

// VerifyPartial runs the four-word recovery check against the stored phrase
func (s *Service) VerifyPartial(ctx context.Context, id string, password []byte, partial string) (bool, error) {
	record, err := s.store.Retrieve(ctx, id, password)
	if err != nil {
		return false, err
	}
	defer record.Wipe()

	if record.Mnemonic == "" {
		return false, nil
	}
	return mnemonic.ValidatePartial(strings.Fields(partial), record.Mnemonic), nil
}

func (s *Service) walletResponse(id, address string, authType model.AuthType) *model.WalletResponse {
	resp := &model.WalletResponse{
		WalletID: id,
		Address:  address,
		AuthType: authType,
	}

	qr, err := generateQRCode(address)
	if err != nil {
		s.logger.Warn("Failed to render address QR", zap.String("wallet_id", id), zap.Error(err))
		return resp
	}
	resp.QR = qr
	return resp
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
