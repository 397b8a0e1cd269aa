package handler

import (
	"net/http"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/custody"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WalletHandler serves wallet and transaction endpoints
type WalletHandler struct {
	svc    *custody.Service
	logger *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(svc *custody.Service, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{svc: svc, logger: logger}
}

// List handles GET /wallets
// @Summary      List wallets
// @Description  Lists stored wallet ids. Nothing is decrypted.
// @Tags         wallets
// @Produce      json
// @Success      200  {array}   string
// @Router       /wallets [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListWallets(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// Create handles POST /wallets
// @Summary      Create new wallet
// @Description  Generates a 12-word phrase, stores the wallet encrypted under the password and binds it to the session
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  true  "Wallet password"
// @Success      201      {object}  model.CreateWalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateWalletRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeBadRequest(w, "password is required")
		return
	}

	// Get password as []byte, use it, then zero it immediately
	password := []byte(req.Password)
	defer clear(password)

	resp, err := h.svc.CreateWallet(r.Context(), password, req.AuthType)
	if err != nil {
		h.logger.Error("Failed to create wallet", zap.Error(err))
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Import handles POST /wallets/import
// @Summary      Import wallet
// @Description  Imports a wallet from a recovery phrase or, when no phrase is given, a hex private key
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportWalletRequest  true  "Phrase or key and password"
// @Success      201      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req model.ImportWalletRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeBadRequest(w, "password is required")
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	resp, err := h.svc.ImportWallet(r.Context(), req.Mnemonic, req.PrivateKey, password, req.AuthType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Unlock handles POST /wallets/{id}/unlock
// @Summary      Unlock wallet
// @Description  Decrypts the wallet to check the password and binds it to the session
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Wallet id"
// @Param        request  body      model.UnlockWalletRequest  true  "Wallet password"
// @Success      200      {object}  model.WalletResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallets/{id}/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req model.UnlockWalletRequest
	if !decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	resp, err := h.svc.Unlock(r.Context(), chi.URLParam(r, "id"), password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// VerifyChallenge handles POST /wallets/{id}/challenge
// @Summary      Confirm recovery phrase
// @Description  Checks the words at positions 3, 6, 9 and 12. The first success consumes the challenge.
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Wallet id"
// @Param        request  body      model.VerifyChallengeRequest  true  "Words by position"
// @Success      200      {object}  model.VerifyResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/{id}/challenge [post]
func (h *WalletHandler) VerifyChallenge(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyChallengeRequest
	if !decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	ok, err := h.svc.VerifyChallenge(r.Context(), chi.URLParam(r, "id"), password, req.Words)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.VerifyResponse{Valid: ok})
}

// VerifyPartial handles POST /wallets/{id}/recovery-check
// @Summary      Recovery check
// @Description  Checks four words, in order, against positions 9, 3, 7 and 11
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Wallet id"
// @Param        request  body      model.VerifyPartialRequest  true  "Four words"
// @Success      200      {object}  model.VerifyResponse
// @Router       /wallets/{id}/recovery-check [post]
func (h *WalletHandler) VerifyPartial(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyPartialRequest
	if !decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	ok, err := h.svc.VerifyPartial(r.Context(), chi.URLParam(r, "id"), password, req.Partial)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.VerifyResponse{Valid: ok})
}

// GetBalance handles POST /wallets/{id}/balance
// @Summary      Get wallet balance
// @Description  Gets the native balance on one network with its USD value when a rate is available
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Wallet id"
// @Param        request  body      model.BalanceRequest  true  "Password and network"
// @Success      200      {object}  model.BalanceResponse
// @Router       /wallets/{id}/balance [post]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	var req model.BalanceRequest
	if !decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	balance, err := h.svc.GetBalance(r.Context(), chi.URLParam(r, "id"), password, req.Network)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// Pay handles POST /wallets/{id}/pay
// @Summary      Send native coin
// @Description  Signs and broadcasts a transfer from the active wallet and records it as pending
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Wallet id"
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      202      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallets/{id}/pay [post]
func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req model.PayRequest
	if !decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	payResp, err := h.svc.Send(r.Context(), chi.URLParam(r, "id"), password, req.ToAddress, req.Amount, req.Network)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusAccepted, payResp)
}

// TransactionHistory handles GET /transactions
// @Summary      Get transactions
// @Description  Gets the local transaction ledger, newest first
// @Tags         transactions
// @Produce      json
// @Param        address  query     string  false  "Sender address"
// @Param        to       query     string  false  "Recipient address"
// @Param        network  query     string  false  "Network id"
// @Success      200      {object}  model.LogResponse
// @Router       /transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	var filter model.HistoryFilter

	if address := strings.TrimSpace(r.URL.Query().Get("address")); address != "" {
		filter.Address = &address
	}
	if to := strings.TrimSpace(r.URL.Query().Get("to")); to != "" {
		filter.Recipient = &to
	}
	if network := strings.TrimSpace(r.URL.Query().Get("network")); network != "" {
		filter.NetworkID = &network
	}

	writeJSON(w, http.StatusOK, h.svc.GetTransactions(filter))
}

// TransactionStatus handles GET /transactions/{network}/{hash}/status
// @Summary      Poll transaction status
// @Description  Checks the receipt once. Completed and failed transactions return their stored status.
// @Tags         transactions
// @Produce      json
// @Param        network  path      string  true  "Network id"
// @Param        hash     path      string  true  "Transaction hash"
// @Success      200      {object}  model.StatusResponse
// @Router       /transactions/{network}/{hash}/status [get]
func (h *WalletHandler) TransactionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.PollStatus(r.Context(), chi.URLParam(r, "hash"), chi.URLParam(r, "network"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// RefreshPending handles POST /transactions/refresh
// @Summary      Refresh pending transactions
// @Description  Polls every pending transaction once
// @Tags         transactions
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /transactions/refresh [post]
func (h *WalletHandler) RefreshPending(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.svc.RefreshPending(r.Context())
	if err != nil {
		h.logger.Warn("Refresh incomplete", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]int{"resolved": resolved})
}

// Watch handles POST /transactions/{network}/{hash}/watch
// @Summary      Watch transaction
// @Description  Polls the transaction in the background until it resolves
// @Tags         transactions
// @Produce      json
// @Param        network  path      string  true  "Network id"
// @Param        hash     path      string  true  "Transaction hash"
// @Success      202      {object}  model.WatchResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /transactions/{network}/{hash}/watch [post]
func (h *WalletHandler) Watch(w http.ResponseWriter, r *http.Request) {
	hash, network := chi.URLParam(r, "hash"), chi.URLParam(r, "network")

	if err := h.svc.Watch(hash, network); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, model.WatchResponse{Hash: hash, Network: network, Watching: true})
}

// Unwatch handles DELETE /transactions/{network}/{hash}/watch
// @Summary      Stop watching transaction
// @Description  Stops background polling. The transaction is unaffected and stays pending until polled.
// @Tags         transactions
// @Produce      json
// @Param        network  path      string  true  "Network id"
// @Param        hash     path      string  true  "Transaction hash"
// @Success      200      {object}  model.WatchResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /transactions/{network}/{hash}/watch [delete]
func (h *WalletHandler) Unwatch(w http.ResponseWriter, r *http.Request) {
	hash, network := chi.URLParam(r, "hash"), chi.URLParam(r, "network")

	stopped, err := h.svc.Unwatch(hash, network)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.WatchResponse{Hash: hash, Network: network, Stopped: stopped})
}
