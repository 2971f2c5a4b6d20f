package handler

import (
	"encoding/json"
	"testing"

	"github.com/nft-mint-gateway/internal/service"
)

func TestMintResponseIsFlat(t *testing.T) {
	body, err := json.Marshal(MintResponse{
		Success: true,
		MintOutcome: service.MintOutcome{
			NFTID:     4,
			NFTNumber: 5,
			Name:      "Space Explorers #0004",
			ImageURI:  "https://img.example.com/4.png",
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, nested := m["mint"]; nested {
		t.Fatal("outcome must not be nested under a mint key")
	}
	if m["success"] != true {
		t.Fatalf("missing success flag: %v", m)
	}
	for _, key := range []string{"nftId", "nftNumber", "name", "imageUrl"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("expected top-level %q, got %v", key, m)
		}
	}
}
