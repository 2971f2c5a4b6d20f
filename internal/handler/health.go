package handler

import (
	"net/http"
	"time"

	"github.com/nft-mint-gateway/internal/service"
)

type HealthHandler struct {
	ledger       service.Ledger
	payerAddress string
	maxSupply    int
	startTime    time.Time
}

func NewHealthHandler(led service.Ledger, payerAddress string, maxSupply int) *HealthHandler {
	return &HealthHandler{
		ledger:       led,
		payerAddress: payerAddress,
		maxSupply:    maxSupply,
		startTime:    time.Now(),
	}
}

type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	PayerAddress  string `json:"payerAddress"`
	TotalMinted   int    `json:"totalMinted"`
	MaxSupply     int    `json:"maxSupply"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Version:       "1.0.0",
		PayerAddress:  h.payerAddress,
		TotalMinted:   h.ledger.MintedCount(),
		MaxSupply:     h.maxSupply,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}
