package handler

import (
	"net/http"

	"github.com/AlexZinkM/multichain-wallet/custody"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NetworkHandler serves the network registry
type NetworkHandler struct {
	svc    *custody.Service
	logger *zap.Logger
}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler(svc *custody.Service, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{svc: svc, logger: logger}
}

// List handles GET /networks
// @Summary      Supported networks
// @Tags         networks
// @Produce      json
// @Success      200  {object}  model.NetworksResponse
// @Router       /networks [get]
func (h *NetworkHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.NetworksResponse{Networks: h.svc.Networks()})
}

// Fee handles GET /networks/{id}/fee
// @Summary      Estimate transfer fee
// @Tags         networks
// @Produce      json
// @Param        id   path      string  true  "Network id"
// @Success      200  {object}  model.FeeResponse
// @Router       /networks/{id}/fee [get]
func (h *NetworkHandler) Fee(w http.ResponseWriter, r *http.Request) {
	fee, err := h.svc.EstimateFee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, fee)
}
