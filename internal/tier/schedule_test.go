package tier

import (
	"testing"
	"time"
)

func testTiers(t0 time.Time) []Tier {
	return []Tier{
		{Name: "early", StartTime: t0, EndTime: t0.Add(time.Hour), MaxSupply: 10, PriceLamports: 500_000_000},
		{Name: "late", StartTime: t0.Add(time.Hour), EndTime: t0.Add(2 * time.Hour), MaxSupply: 5, PriceLamports: 1_000_000_000},
	}
}

func TestScheduleCurrent(t *testing.T) {
	t0 := time.Date(2025, 7, 15, 16, 0, 0, 0, time.UTC)
	s, err := NewSchedule(testTiers(t0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("start boundary is inclusive", func(t *testing.T) {
		cur := s.Current(t0)
		if cur == nil || cur.Name != "early" {
			t.Fatalf("expected early tier at t0, got %+v", cur)
		}
	})

	t.Run("end boundary is exclusive", func(t *testing.T) {
		cur := s.Current(t0.Add(2 * time.Hour))
		if cur != nil {
			t.Fatalf("expected no tier at exclusive end, got %+v", cur)
		}
	})

	t.Run("contiguous boundary rolls to next tier", func(t *testing.T) {
		cur := s.Current(t0.Add(time.Hour))
		if cur == nil || cur.Name != "late" {
			t.Fatalf("expected late tier at boundary, got %+v", cur)
		}
	})

	t.Run("before schedule", func(t *testing.T) {
		if cur := s.Current(t0.Add(-time.Second)); cur != nil {
			t.Fatalf("expected no tier before schedule, got %+v", cur)
		}
	})
}

func TestScheduleCurrentOverlapFirstWins(t *testing.T) {
	t0 := time.Date(2025, 7, 15, 16, 0, 0, 0, time.UTC)
	s, err := NewSchedule([]Tier{
		{Name: "a", StartTime: t0, EndTime: t0.Add(time.Hour), MaxSupply: 1, PriceLamports: 1},
		{Name: "b", StartTime: t0, EndTime: t0.Add(time.Hour), MaxSupply: 1, PriceLamports: 1},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cur := s.Current(t0.Add(time.Minute))
	if cur == nil || cur.Name != "a" {
		t.Fatalf("expected first declared tier to win, got %+v", cur)
	}
}

func TestScheduleNext(t *testing.T) {
	t0 := time.Date(2025, 7, 15, 16, 0, 0, 0, time.UTC)
	s, err := NewSchedule(testTiers(t0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	next := s.Next(t0.Add(-time.Minute))
	if next == nil || next.Name != "early" {
		t.Fatalf("expected early as next tier, got %+v", next)
	}

	next = s.Next(t0.Add(30 * time.Minute))
	if next == nil || next.Name != "late" {
		t.Fatalf("expected late as next tier, got %+v", next)
	}

	if next = s.Next(t0.Add(3 * time.Hour)); next != nil {
		t.Fatalf("expected no next tier after schedule, got %+v", next)
	}
}

func TestNewScheduleValidation(t *testing.T) {
	t0 := time.Date(2025, 7, 15, 16, 0, 0, 0, time.UTC)

	t.Run("rejects empty schedule", func(t *testing.T) {
		if _, err := NewSchedule(nil); err == nil {
			t.Fatal("expected error for empty schedule")
		}
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := NewSchedule([]Tier{
			{Name: "x", StartTime: t0, EndTime: t0.Add(time.Hour), MaxSupply: 1, PriceLamports: 1},
			{Name: "x", StartTime: t0.Add(time.Hour), EndTime: t0.Add(2 * time.Hour), MaxSupply: 1, PriceLamports: 1},
		})
		if err == nil {
			t.Fatal("expected error for duplicate tier name")
		}
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := NewSchedule([]Tier{
			{Name: "x", StartTime: t0.Add(time.Hour), EndTime: t0, MaxSupply: 1, PriceLamports: 1},
		})
		if err == nil {
			t.Fatal("expected error for inverted window")
		}
	})

	t.Run("rejects zero price", func(t *testing.T) {
		_, err := NewSchedule([]Tier{
			{Name: "x", StartTime: t0, EndTime: t0.Add(time.Hour), MaxSupply: 1},
		})
		if err == nil {
			t.Fatal("expected error for zero price")
		}
	})
}

func TestParseSchedule(t *testing.T) {
	raw := `[{"name":"wl","startTime":1752594900,"endTime":1752767700,"maxSupply":100,"priceSOL":0.5}]`
	s, err := ParseSchedule(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tiers := s.All()
	if len(tiers) != 1 {
		t.Fatalf("expected 1 tier, got %d", len(tiers))
	}
	if tiers[0].PriceLamports != 500_000_000 {
		t.Fatalf("unexpected price: %d", tiers[0].PriceLamports)
	}
	if got := tiers[0].StartTime.Unix(); got != 1752594900 {
		t.Fatalf("unexpected start time: %d", got)
	}

	if _, err := ParseSchedule("not json"); err == nil {
		t.Fatal("expected error for malformed schedule")
	}
}
