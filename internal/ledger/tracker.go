package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nft-mint-gateway/internal/metrics"
)

var (
	// ErrSupplyExhausted means no sequential id below the max supply is free.
	ErrSupplyExhausted = errors.New("ledger: max supply reached")
	// ErrAlreadyMinted means the requested id is already consumed or reserved.
	ErrAlreadyMinted = errors.New("ledger: id already minted")
)

// Mirror pushes the serialized record to a remote version-controlled store.
type Mirror interface {
	Update(ctx context.Context, content []byte, message string) error
}

// Tracker owns the identifier ledger. Every allocation and mutation runs
// under a single mutex, so two concurrent requests can never be handed the
// same id. Allocations are held as in-memory reservations and only persisted
// by Commit, after the mint itself has succeeded.
type Tracker struct {
	path   string
	mirror Mirror

	mu       sync.Mutex
	record   *Record
	reserved map[int]struct{}
}

// NewTracker loads the ledger file at path, initializing a fresh record when
// the file is absent or corrupt. A nil mirror disables remote mirroring.
func NewTracker(path string, mirror Mirror) (*Tracker, error) {
	t := &Tracker{
		path:     path,
		mirror:   mirror,
		reserved: make(map[int]struct{}),
	}

	rec := NewRecord()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := json.Unmarshal(data, rec); uerr != nil {
			log.Warn().Err(uerr).Str("path", path).Msg("mint tracking file corrupt, reinitializing")
			rec = NewRecord()
			if werr := t.persist(rec); werr != nil {
				return nil, werr
			}
		}
	case os.IsNotExist(err):
		if werr := t.persist(rec); werr != nil {
			return nil, werr
		}
	default:
		return nil, fmt.Errorf("reading mint tracking file: %w", err)
	}

	t.record = rec
	return t, nil
}

// Allocate reserves the next sequential id for a paid mint, scanning past
// ids consumed out of band (airdrops) or currently reserved. Ids at or above
// maxSupply are never handed out.
func (t *Tracker) Allocate(maxSupply int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.record.LastMintedID + 1
	for t.takenLocked(id) {
		id++
	}
	if id >= maxSupply {
		return 0, ErrSupplyExhausted
	}

	t.reserved[id] = struct{}{}
	return id, nil
}

// ReserveID reserves a specific id for the airdrop path.
func (t *Tracker) ReserveID(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.takenLocked(id) {
		return ErrAlreadyMinted
	}
	t.reserved[id] = struct{}{}
	return nil
}

// Release drops a reservation after a failed mint; the id becomes
// allocatable again.
func (t *Tracker) Release(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.reserved, id)
}

// Commit records a reserved id as consumed and persists the ledger. When
// advance is true (the normal paid path) the sequence pointer moves to id;
// airdrops commit with advance=false so the next sequential id is unaffected.
// The remote mirror is updated asynchronously; mirror failures are logged
// and never propagated.
func (t *Tracker) Commit(id int, advance bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.reserved, id)
	t.record.MintedIDs[id] = struct{}{}
	if advance {
		t.record.LastMintedID = id
	}

	if err := t.persist(t.record); err != nil {
		return err
	}

	if t.mirror != nil {
		content, err := json.Marshal(t.record)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Update mint tracking: NFT #%d", id)
		if !advance {
			msg = fmt.Sprintf("Airdrop update: NFT #%d", id)
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := t.mirror.Update(ctx, content, msg); err != nil {
				metrics.MirrorFailures.Inc()
				log.Error().Err(err).Int("nftNumber", id).Msg("failed to mirror mint tracking file")
			}
		}()
	}
	return nil
}

// IsMinted reports whether id is consumed or reserved.
func (t *Tracker) IsMinted(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.takenLocked(id)
}

// LastMintedID returns the current sequence pointer.
func (t *Tracker) LastMintedID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.LastMintedID
}

// MintedCount returns the number of consumed ids.
func (t *Tracker) MintedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.record.MintedIDs)
}

func (t *Tracker) takenLocked(id int) bool {
	if _, ok := t.record.MintedIDs[id]; ok {
		return true
	}
	_, ok := t.reserved[id]
	return ok
}

func (t *Tracker) persist(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing mint tracking file: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("replacing mint tracking file: %w", err)
	}
	return nil
}
