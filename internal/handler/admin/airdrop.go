package admin

import (
	"encoding/json"
	"net/http"

	"github.com/nft-mint-gateway/internal/handler"
	"github.com/nft-mint-gateway/internal/service"
)

type AirdropHandler struct {
	service *service.MintService
}

func NewAirdropHandler(svc *service.MintService) *AirdropHandler {
	return &AirdropHandler{service: svc}
}

type airdropRequest struct {
	UserWallet string `json:"userWallet"`
	NFTID      *int   `json:"nftId"`
}

type airdropResponse struct {
	Success bool `json:"success"`
	service.AirdropOutcome
}

func (h *AirdropHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req airdropRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		handler.RespondError(w, http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request body")
		return
	}
	if req.NFTID == nil {
		handler.RespondError(w, http.StatusBadRequest, service.CodeInvalidRequest, "nftId is required")
		return
	}

	outcome, err := h.service.Airdrop(r.Context(), req.UserWallet, *req.NFTID)
	if err != nil {
		service.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, airdropResponse{Success: true, AirdropOutcome: *outcome})
}
