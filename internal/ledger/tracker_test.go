package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mint-tracking.json")
	tr, err := NewTracker(path, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return tr, path
}

func TestTrackerInitializesFreshRecord(t *testing.T) {
	tr, path := newTestTracker(t)

	if tr.LastMintedID() != -1 {
		t.Fatalf("expected fresh last minted id -1, got %d", tr.LastMintedID())
	}
	if tr.MintedCount() != 0 {
		t.Fatalf("expected empty minted set, got %d", tr.MintedCount())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected tracking file to be created: %v", err)
	}
}

func TestTrackerRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mint-tracking.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	tr, err := NewTracker(path, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tr.LastMintedID() != -1 || tr.MintedCount() != 0 {
		t.Fatalf("expected reinitialized record, got last=%d count=%d", tr.LastMintedID(), tr.MintedCount())
	}
}

func TestTrackerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mint-tracking.json")
	tr, err := NewTracker(path, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, id := range []int{0, 1, 2} {
		got, err := tr.Allocate(100)
		if err != nil {
			t.Fatalf("allocate: %v", err)
		}
		if got != id {
			t.Fatalf("expected id %d, got %d", id, got)
		}
		if err := tr.Commit(got, true); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	reloaded, err := NewTracker(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LastMintedID() != 2 {
		t.Fatalf("expected last minted id 2 after reload, got %d", reloaded.LastMintedID())
	}
	for _, id := range []int{0, 1, 2} {
		if !reloaded.IsMinted(id) {
			t.Fatalf("expected id %d minted after reload", id)
		}
	}
	if reloaded.IsMinted(3) {
		t.Fatal("expected id 3 unminted after reload")
	}
}

func TestAirdropDoesNotAdvanceSequence(t *testing.T) {
	tr, _ := newTestTracker(t)

	if err := tr.ReserveID(7); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := tr.Commit(7, false); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if tr.LastMintedID() != -1 {
		t.Fatalf("airdrop must not advance sequence, got %d", tr.LastMintedID())
	}

	// The next paid allocation is unaffected by the airdrop.
	id, err := tr.Allocate(100)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected next paid id 0, got %d", id)
	}
}

func TestAllocateScansPastConsumedIDs(t *testing.T) {
	tr, _ := newTestTracker(t)

	// Airdrops consume the ids the paid path would otherwise hand out next.
	for _, id := range []int{0, 1} {
		if err := tr.ReserveID(id); err != nil {
			t.Fatalf("reserve %d: %v", id, err)
		}
		if err := tr.Commit(id, false); err != nil {
			t.Fatalf("commit %d: %v", id, err)
		}
	}

	id, err := tr.Allocate(100)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected allocation to scan to 2, got %d", id)
	}
}

func TestAllocateSupplyExhausted(t *testing.T) {
	tr, _ := newTestTracker(t)

	for i := 0; i < 3; i++ {
		id, err := tr.Allocate(3)
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		if err := tr.Commit(id, true); err != nil {
			t.Fatalf("commit %d: %v", id, err)
		}
	}

	if _, err := tr.Allocate(3); !errors.Is(err, ErrSupplyExhausted) {
		t.Fatalf("expected ErrSupplyExhausted, got %v", err)
	}
}

func TestReserveIDConflicts(t *testing.T) {
	tr, _ := newTestTracker(t)

	if err := tr.ReserveID(5); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := tr.ReserveID(5); !errors.Is(err, ErrAlreadyMinted) {
		t.Fatalf("expected ErrAlreadyMinted for reserved id, got %v", err)
	}

	if err := tr.Commit(5, false); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := tr.ReserveID(5); !errors.Is(err, ErrAlreadyMinted) {
		t.Fatalf("expected ErrAlreadyMinted for committed id, got %v", err)
	}
}

func TestReleaseMakesIDAllocatableAgain(t *testing.T) {
	tr, _ := newTestTracker(t)

	id, err := tr.Allocate(10)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	tr.Release(id)

	again, err := tr.Allocate(10)
	if err != nil {
		t.Fatalf("allocate after release: %v", err)
	}
	if again != id {
		t.Fatalf("expected released id %d to be reused, got %d", id, again)
	}
}

func TestConcurrentAllocationsAreUnique(t *testing.T) {
	tr, _ := newTestTracker(t)

	const n = 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := tr.Allocate(1000)
			if err != nil {
				t.Errorf("allocate: %v", err)
				return
			}
			mu.Lock()
			if _, dup := ids[id]; dup {
				t.Errorf("duplicate id assigned: %d", id)
			}
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(ids))
	}
}
