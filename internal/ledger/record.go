package ledger

import (
	"encoding/json"
	"sort"
)

// Record is the persisted ledger state. The on-disk and mirrored form is a
// JSON document {"mintedIds": [...], "lastMintedId": n}; ids are kept as a
// set in memory and serialized sorted for stable diffs.
type Record struct {
	MintedIDs    map[int]struct{}
	LastMintedID int
}

// NewRecord returns an empty record; -1 means no sequential mint yet.
func NewRecord() *Record {
	return &Record{
		MintedIDs:    make(map[int]struct{}),
		LastMintedID: -1,
	}
}

type recordJSON struct {
	MintedIDs    []int `json:"mintedIds"`
	LastMintedID int   `json:"lastMintedId"`
}

func (r *Record) MarshalJSON() ([]byte, error) {
	ids := make([]int, 0, len(r.MintedIDs))
	for id := range r.MintedIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return json.MarshalIndent(recordJSON{MintedIDs: ids, LastMintedID: r.LastMintedID}, "", "  ")
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.MintedIDs = make(map[int]struct{}, len(raw.MintedIDs))
	for _, id := range raw.MintedIDs {
		r.MintedIDs[id] = struct{}{}
	}
	r.LastMintedID = raw.LastMintedID
	return nil
}
