package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMnemonic    = errors.New("invalid mnemonic")
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrInvalidRecipient   = errors.New("invalid recipient address")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrNotFound           = errors.New("wallet not found")
	ErrUnsupportedNetwork = errors.New("network not supported")
	ErrSubmissionFailed   = errors.New("transaction submission failed")
	ErrCorruptRecord      = errors.New("corrupt wallet record")

	ErrEmptyWalletID    = errors.New("wallet id is empty")
	ErrInvalidAuthType  = errors.New("invalid auth type")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrStorage          = errors.New("storage failure")
	ErrChallengeUsed    = errors.New("recovery phrase already confirmed")
)

// SubmissionError is returned when the chain client rejects a transaction
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSubmissionFailed, e.Reason)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSubmissionFailed) hold for every SubmissionError
func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}

// UnlockFailedMessage is the only text users see when a wallet cannot be opened
const UnlockFailedMessage = "could not unlock wallet"

// InternalErrorMessage is shown for every failure users cannot act on
const InternalErrorMessage = "internal error"

// publicErrors carry text that is safe to show as is
var publicErrors = []error{
	ErrInvalidMnemonic,
	ErrInvalidPrivateKey,
	ErrInvalidRecipient,
	ErrInvalidAmount,
	ErrUnsupportedNetwork,
	ErrSubmissionFailed,
	ErrEmptyWalletID,
	ErrInvalidAuthType,
	ErrNotAuthenticated,
	ErrChallengeUsed,
}

// PublicMessage returns the user-facing text for err.
// A missing wallet and a wrong password read the same; anything unexpected reads as InternalErrorMessage.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDecryptionFailed) || errors.Is(err, ErrCorruptRecord) {
		return UnlockFailedMessage
	}
	for _, target := range publicErrors {
		if errors.Is(err, target) {
			return err.Error()
		}
	}
	return InternalErrorMessage
}

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
