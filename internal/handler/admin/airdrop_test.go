package admin

import (
	"encoding/json"
	"testing"

	"github.com/nft-mint-gateway/internal/service"
)

func TestAirdropResponseIsFlat(t *testing.T) {
	body, err := json.Marshal(airdropResponse{
		Success: true,
		AirdropOutcome: service.AirdropOutcome{
			NFTID: 7,
			Name:  "Space Explorers #0007",
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, nested := m["airdrop"]; nested {
		t.Fatal("outcome must not be nested under an airdrop key")
	}
	if m["success"] != true || m["nftId"] != float64(7) {
		t.Fatalf("unexpected envelope: %v", m)
	}
}
