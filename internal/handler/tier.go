package handler

import (
	"net/http"

	"github.com/nft-mint-gateway/internal/service"
)

type TierStatusHandler struct {
	service *service.MintService
}

func NewTierStatusHandler(svc *service.MintService) *TierStatusHandler {
	return &TierStatusHandler{service: svc}
}

func (h *TierStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.service.TierStatus(r.Context()))
}

type TierListHandler struct {
	service *service.MintService
}

func NewTierListHandler(svc *service.MintService) *TierListHandler {
	return &TierListHandler{service: svc}
}

type tierListResponse struct {
	Tiers []service.TierInfo `json:"tiers"`
}

func (h *TierListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, tierListResponse{Tiers: h.service.AllTiers(r.Context())})
}
