package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nft-mint-gateway/internal/service"
)

type WalletCheckHandler struct {
	service *service.WalletService
}

func NewWalletCheckHandler(svc *service.WalletService) *WalletCheckHandler {
	return &WalletCheckHandler{service: svc}
}

type walletCheckResponse struct {
	WalletAddress string `json:"walletAddress"`
	IsAuthorized  bool   `json:"isAuthorized"`
}

func (h *WalletCheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	authorized, err := h.service.Check(r.Context(), address)
	if err != nil {
		service.RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, walletCheckResponse{
		WalletAddress: address,
		IsAuthorized:  authorized,
	})
}

type WalletStatusHandler struct {
	service *service.WalletService
}

func NewWalletStatusHandler(svc *service.WalletService) *WalletStatusHandler {
	return &WalletStatusHandler{service: svc}
}

func (h *WalletStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		service.RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, status)
}
