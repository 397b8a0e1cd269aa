package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"go.uber.org/zap"
)

// errorStatus maps a domain error to its HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrDecryptionFailed),
		errors.Is(err, model.ErrCorruptRecord):
		// one status and code for all three so callers cannot tell them apart
		return http.StatusUnauthorized, "unlock_failed"
	case errors.Is(err, model.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, model.ErrInvalidMnemonic):
		return http.StatusBadRequest, "invalid_mnemonic"
	case errors.Is(err, model.ErrInvalidPrivateKey):
		return http.StatusBadRequest, "invalid_private_key"
	case errors.Is(err, model.ErrInvalidRecipient):
		return http.StatusBadRequest, "invalid_recipient"
	case errors.Is(err, model.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, model.ErrInvalidAuthType):
		return http.StatusBadRequest, "invalid_auth_type"
	case errors.Is(err, model.ErrEmptyWalletID):
		return http.StatusBadRequest, "empty_wallet_id"
	case errors.Is(err, model.ErrUnsupportedNetwork):
		return http.StatusBadRequest, "unsupported_network"
	case errors.Is(err, model.ErrChallengeUsed):
		return http.StatusConflict, "challenge_used"
	case errors.Is(err, model.ErrSubmissionFailed):
		return http.StatusBadGateway, "submission_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: model.PublicMessage(err), Code: code})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msg, Code: "bad_request"})
}

// decode reads a JSON body into v
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}
