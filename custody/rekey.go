package custody

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Rekey re-encrypts a wallet under a new password. The result is stored under a new id
// and the original entry is removed, so the old password no longer opens the wallet.
// When the original was the active wallet, the session moves to the new id.
// passwords must be []byte for security (caller should zero them after use)
func (s *Service) Rekey(ctx context.Context, id string, oldPassword, newPassword []byte) (string, error) {
	record, err := s.store.Retrieve(ctx, id, oldPassword)
	if err != nil {
		return "", err
	}
	defer record.Wipe()

	record.ID = ""
	newID, err := s.store.Persist(ctx, record, newPassword)
	if err != nil {
		return "", err
	}

	confirmed, err := s.store.Confirmed(ctx, id)
	if err == nil && confirmed {
		err = s.store.MarkConfirmed(ctx, newID)
	}
	if err == nil {
		if current, ok := s.session.CurrentWallet(); ok && current == id {
			err = s.session.BindWallet(newID)
		}
	}
	if err != nil {
		// the original stays usable; drop the half-made copy
		if derr := s.store.Delete(ctx, newID); derr != nil {
			s.logger.Error("Failed to remove re-encrypted copy", zap.String("wallet_id", newID), zap.Error(derr))
		}
		return "", err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return newID, fmt.Errorf("wallet re-encrypted as %s but the old entry remains: %w", newID, err)
	}

	s.logger.Info("Wallet re-encrypted", zap.String("wallet_id", id), zap.String("new_wallet_id", newID))
	return newID, nil
}
