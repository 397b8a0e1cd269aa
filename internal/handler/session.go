package handler

import (
	"net/http"

	"github.com/AlexZinkM/multichain-wallet/custody"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/session"

	"go.uber.org/zap"
)

// SessionHandler serves the session binding
type SessionHandler struct {
	svc    *custody.Service
	logger *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(svc *custody.Service, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, logger: logger}
}

func sessionResponse(c session.Change) model.SessionResponse {
	return model.SessionResponse{
		IdentityID:      c.IdentityID,
		CurrentWalletID: c.WalletID,
		Connected:       c.Connected(),
		AuthType:        c.AuthType,
	}
}

// Get handles GET /session
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse(h.svc.Session().Snapshot()))
}

// SignIn handles POST /session/sign-in
// @Summary      Sign in
// @Description  Authenticates through the configured identity provider
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignInRequest  true  "Credentials"
// @Success      200      {object}  model.SessionResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /session/sign-in [post]
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if !decode(w, r, &req) {
		return
	}

	_, err := h.svc.Session().SignIn(r.Context(), session.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Provider: req.Provider,
	})
	if err != nil {
		h.logger.Info("Sign in rejected", zap.Error(err))
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(h.svc.Session().Snapshot()))
}

// BindWallet handles POST /session/wallet
// @Summary      Bind wallet
// @Description  Makes a stored wallet the active wallet
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.BindRequest  true  "Wallet id"
// @Success      200      {object}  model.SessionResponse
// @Router       /session/wallet [post]
func (h *SessionHandler) BindWallet(w http.ResponseWriter, r *http.Request) {
	var req model.BindRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.BindWallet(r.Context(), req.WalletID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(h.svc.Session().Snapshot()))
}

// Disconnect handles DELETE /session/wallet
// @Summary      Disconnect wallet
// @Description  Unbinds the active wallet. Identity and auth type stay.
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session/wallet [delete]
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Session().Disconnect(); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(h.svc.Session().Snapshot()))
}

// SetAuthType handles PUT /session/auth-type
// @Summary      Set auth type
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.AuthTypeRequest  true  "credentialed or phrase-secured"
// @Success      200      {object}  model.SessionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /session/auth-type [put]
func (h *SessionHandler) SetAuthType(w http.ResponseWriter, r *http.Request) {
	var req model.AuthTypeRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.Session().SetAuthType(req.AuthType); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(h.svc.Session().Snapshot()))
}

// SignOut handles POST /session/sign-out
// @Summary      Sign out
// @Description  Clears identity and active wallet. Stored wallets are kept.
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session/sign-out [post]
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Session().SignOut(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(h.svc.Session().Snapshot()))
}
