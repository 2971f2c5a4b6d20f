package tier

import (
	"encoding/json"
	"fmt"
	"time"
)

// LamportsPerSOL is the smallest-unit denomination of the payment currency.
const LamportsPerSOL = 1_000_000_000

// Tier is a time-boxed pricing and supply bucket. The window is half-open:
// StartTime inclusive, EndTime exclusive.
type Tier struct {
	Name          string
	StartTime     time.Time
	EndTime       time.Time
	MaxSupply     int
	PriceLamports int64
}

// PriceSOL returns the tier price in whole-currency units for display.
func (t Tier) PriceSOL() float64 {
	return float64(t.PriceLamports) / LamportsPerSOL
}

// Contains reports whether now falls inside the tier's window.
func (t Tier) Contains(now time.Time) bool {
	return !now.Before(t.StartTime) && now.Before(t.EndTime)
}

// Schedule is the static, declaration-ordered tier list. It is built once at
// startup and never mutated.
type Schedule struct {
	tiers []Tier
}

// NewSchedule validates the tier list and returns an immutable schedule.
// Tiers are assumed non-overlapping; overlap is not rejected, and Current
// resolves ambiguity by declaration order.
func NewSchedule(tiers []Tier) (*Schedule, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("tier schedule is empty")
	}

	seen := make(map[string]struct{}, len(tiers))
	for _, t := range tiers {
		if t.Name == "" {
			return nil, fmt.Errorf("tier name must not be empty")
		}
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tier name %q", t.Name)
		}
		seen[t.Name] = struct{}{}

		if !t.StartTime.Before(t.EndTime) {
			return nil, fmt.Errorf("tier %q: start time must precede end time", t.Name)
		}
		if t.MaxSupply <= 0 {
			return nil, fmt.Errorf("tier %q: max supply must be positive", t.Name)
		}
		if t.PriceLamports <= 0 {
			return nil, fmt.Errorf("tier %q: price must be positive", t.Name)
		}
	}

	cp := make([]Tier, len(tiers))
	copy(cp, tiers)
	return &Schedule{tiers: cp}, nil
}

// Current returns the first tier whose window contains now, or nil when no
// tier is active.
func (s *Schedule) Current(now time.Time) *Tier {
	for i := range s.tiers {
		if s.tiers[i].Contains(now) {
			t := s.tiers[i]
			return &t
		}
	}
	return nil
}

// Next returns the earliest tier starting after now, or nil.
func (s *Schedule) Next(now time.Time) *Tier {
	var next *Tier
	for i := range s.tiers {
		t := s.tiers[i]
		if t.StartTime.After(now) && (next == nil || t.StartTime.Before(next.StartTime)) {
			next = &t
		}
	}
	return next
}

// All returns a copy of the tier list in declaration order.
func (s *Schedule) All() []Tier {
	cp := make([]Tier, len(s.tiers))
	copy(cp, s.tiers)
	return cp
}

// tierJSON is the env-var wire form of a tier definition.
type tierJSON struct {
	Name      string  `json:"name"`
	StartTime int64   `json:"startTime"`
	EndTime   int64   `json:"endTime"`
	MaxSupply int     `json:"maxSupply"`
	PriceSOL  float64 `json:"priceSOL"`
}

// ParseSchedule builds a schedule from the PRICING_TIERS JSON document:
// an array of {name, startTime, endTime, maxSupply, priceSOL} with unix
// second timestamps.
func ParseSchedule(raw string) (*Schedule, error) {
	var defs []tierJSON
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		return nil, fmt.Errorf("parsing tier schedule: %w", err)
	}

	tiers := make([]Tier, 0, len(defs))
	for _, d := range defs {
		tiers = append(tiers, Tier{
			Name:          d.Name,
			StartTime:     time.Unix(d.StartTime, 0).UTC(),
			EndTime:       time.Unix(d.EndTime, 0).UTC(),
			MaxSupply:     d.MaxSupply,
			PriceLamports: int64(d.PriceSOL * LamportsPerSOL),
		})
	}
	return NewSchedule(tiers)
}

// DefaultSchedule is the launch schedule used when PRICING_TIERS is unset.
func DefaultSchedule() *Schedule {
	mk := func(name, start, end string, supply int, priceSOL float64) Tier {
		st, _ := time.Parse(time.RFC3339, start)
		et, _ := time.Parse(time.RFC3339, end)
		return Tier{
			Name:          name,
			StartTime:     st,
			EndTime:       et,
			MaxSupply:     supply,
			PriceLamports: int64(priceSOL * LamportsPerSOL),
		}
	}

	s, err := NewSchedule([]Tier{
		mk("Space Cadet NFTs", "2025-07-15T15:55:00Z", "2025-07-17T15:55:00Z", 1000, 0.5),
		mk("Space Voyager NFTs", "2025-07-17T16:00:00Z", "2025-07-18T15:55:00Z", 1000, 1),
		mk("Space Explorer NFTs", "2025-07-18T16:00:00Z", "2025-07-19T15:55:00Z", 400, 5),
		mk("Space Pioneer NFTs", "2025-07-19T16:00:00Z", "2025-07-20T16:00:00Z", 100, 10),
	})
	if err != nil {
		panic(err)
	}
	return s
}
