package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nft-mint-gateway/internal/handler"
	"github.com/nft-mint-gateway/internal/model"
	"github.com/nft-mint-gateway/internal/service"
)

// --- Add wallets ---

type AddWalletsHandler struct {
	service *service.WalletService
}

func NewAddWalletsHandler(svc *service.WalletService) *AddWalletsHandler {
	return &AddWalletsHandler{service: svc}
}

type addWalletsRequest struct {
	WalletAddress   string     `json:"walletAddress,omitempty"`
	WalletAddresses []string   `json:"walletAddresses,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
}

type addWalletsResponse struct {
	Success      bool     `json:"success"`
	AddedWallets []string `json:"addedWallets"`
}

func (h *AddWalletsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req addWalletsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		handler.RespondError(w, http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request body")
		return
	}

	wallets := req.WalletAddresses
	if req.WalletAddress != "" {
		wallets = append(wallets, req.WalletAddress)
	}

	if err := h.service.BatchAdd(r.Context(), wallets, req.ExpiresAt); err != nil {
		service.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, addWalletsResponse{Success: true, AddedWallets: wallets})
}

// --- Remove wallet ---

type RemoveWalletHandler struct {
	service *service.WalletService
}

func NewRemoveWalletHandler(svc *service.WalletService) *RemoveWalletHandler {
	return &RemoveWalletHandler{service: svc}
}

type removeWalletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type removeWalletResponse struct {
	Success       bool   `json:"success"`
	WalletAddress string `json:"walletAddress"`
}

func (h *RemoveWalletHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req removeWalletRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		handler.RespondError(w, http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request body")
		return
	}
	if err := h.service.Remove(r.Context(), req.WalletAddress); err != nil {
		service.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, removeWalletResponse{Success: true, WalletAddress: req.WalletAddress})
}

// --- List wallets ---

type ListWalletsHandler struct {
	service *service.WalletService
}

func NewListWalletsHandler(svc *service.WalletService) *ListWalletsHandler {
	return &ListWalletsHandler{service: svc}
}

type listWalletsResponse struct {
	Wallets []model.WalletSummary `json:"wallets"`
	Total   int                   `json:"total"`
}

func (h *ListWalletsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	includeUsed := r.URL.Query().Get("includeUsed") == "true"
	wallets, err := h.service.List(r.Context(), includeUsed)
	if err != nil {
		service.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, listWalletsResponse{Wallets: wallets, Total: len(wallets)})
}

// --- Reset a wallet's mint count ---

type ResetMintCountHandler struct {
	service *service.WalletService
}

func NewResetMintCountHandler(svc *service.WalletService) *ResetMintCountHandler {
	return &ResetMintCountHandler{service: svc}
}

type resetMintCountRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type resetMintCountResponse struct {
	Success       bool   `json:"success"`
	WalletAddress string `json:"walletAddress"`
}

func (h *ResetMintCountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req resetMintCountRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		handler.RespondError(w, http.StatusBadRequest, service.CodeInvalidRequest, "Invalid request body")
		return
	}
	if err := h.service.ResetMintCount(r.Context(), req.WalletAddress); err != nil {
		service.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, resetMintCountResponse{Success: true, WalletAddress: req.WalletAddress})
}

// --- Stats ---

type StatsHandler struct {
	service *service.WalletService
}

func NewStatsHandler(svc *service.WalletService) *StatsHandler {
	return &StatsHandler{service: svc}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		service.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, stats)
}
