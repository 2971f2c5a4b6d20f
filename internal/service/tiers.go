package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nft-mint-gateway/internal/tier"
)

// TierInfo is the public view of one pricing tier.
type TierInfo struct {
	Name      string    `json:"name"`
	PriceSOL  float64   `json:"priceSOL"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	MaxSupply int       `json:"maxSupply"`
	Minted    int       `json:"minted"`
	Remaining int       `json:"remaining"`
	IsSoldOut bool      `json:"isSoldOut"`
	Status    string    `json:"status"`
}

// TierStatus is the public sale-state snapshot: the active tier (nil between
// windows), the next scheduled tier, and overall supply progress.
type TierStatus struct {
	Active      *TierInfo `json:"activeTier"`
	Next        *TierInfo `json:"nextTier,omitempty"`
	TotalMinted int       `json:"totalMinted"`
	MaxSupply   int       `json:"maxSupply"`
	ServerTime  time.Time `json:"serverTime"`
}

// TierStatus reports the current sale state. Counter reads fail open: an
// unreadable count is surfaced as zero rather than an error, matching the
// admission pipeline's capacity gate.
func (s *MintService) TierStatus(ctx context.Context) *TierStatus {
	now := s.now()
	status := &TierStatus{
		TotalMinted: s.ledger.MintedCount(),
		MaxSupply:   s.cfg.MaxSupply,
		ServerTime:  now.UTC(),
	}

	if active := s.schedule.Current(now); active != nil {
		status.Active = s.tierInfo(ctx, *active, now)
	}
	if next := s.schedule.Next(now); next != nil {
		status.Next = s.tierInfo(ctx, *next, now)
	}
	return status
}

// AllTiers returns every configured tier with its consumed supply.
func (s *MintService) AllTiers(ctx context.Context) []TierInfo {
	now := s.now()
	tiers := s.schedule.All()
	out := make([]TierInfo, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, *s.tierInfo(ctx, t, now))
	}
	return out
}

func (s *MintService) tierInfo(ctx context.Context, t tier.Tier, now time.Time) *TierInfo {
	count, err := s.store.TierMintCount(ctx, t.Name)
	if err != nil {
		log.Warn().Err(err).Str("tier", t.Name).Msg("tier counter unavailable")
		count = 0
	}

	remaining := t.MaxSupply - count
	if remaining < 0 {
		remaining = 0
	}
	soldOut := count >= t.MaxSupply

	status := "ended"
	switch {
	case soldOut:
		status = "sold_out"
	case t.Contains(now):
		status = "active"
	case t.StartTime.After(now):
		status = "upcoming"
	}

	return &TierInfo{
		Name:      t.Name,
		PriceSOL:  t.PriceSOL(),
		StartTime: t.StartTime.UTC(),
		EndTime:   t.EndTime.UTC(),
		MaxSupply: t.MaxSupply,
		Minted:    count,
		Remaining: remaining,
		IsSoldOut: soldOut,
		Status:    status,
	}
}
