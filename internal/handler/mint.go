package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nft-mint-gateway/internal/events"
	"github.com/nft-mint-gateway/internal/service"
)

type MintHandler struct {
	service *service.MintService
	hub     *events.Hub
}

func NewMintHandler(svc *service.MintService, hub *events.Hub) *MintHandler {
	return &MintHandler{service: svc, hub: hub}
}

type MintRequest struct {
	UserWallet       string `json:"userWallet"`
	PaymentSignature string `json:"paymentSignature"`
}

// MintResponse flattens the outcome next to the success flag, so clients
// read nftId, nftNumber, name and imageUrl at the top level.
type MintResponse struct {
	Success bool `json:"success"`
	service.MintOutcome
}

func (h *MintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req MintRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request body")
		return
	}

	outcome, err := h.service.Mint(r.Context(), req.UserWallet, req.PaymentSignature)
	if err != nil {
		service.RespondError(w, err)
		return
	}

	h.hub.Publish("mint", map[string]any{
		"nftId":  outcome.NFTID,
		"name":   outcome.Name,
		"tier":   outcome.Tier,
		"wallet": req.UserWallet,
	})

	RespondJSON(w, http.StatusOK, MintResponse{Success: true, MintOutcome: *outcome})
}
