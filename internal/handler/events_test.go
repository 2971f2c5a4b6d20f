package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nft-mint-gateway/internal/events"
)

func TestEventsHandlerStreamsMints(t *testing.T) {
	hub := events.NewHub()
	srv := httptest.NewServer(NewEventsHandler(hub))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event-stream content type, got %q", ct)
	}

	scanner := bufio.NewScanner(resp.Body)
	if !scanner.Scan() || !strings.HasPrefix(scanner.Text(), ": connected") {
		t.Fatalf("expected connection comment, got %q", scanner.Text())
	}

	// Subscription is registered before the comment is flushed, so the
	// publish below is guaranteed to be delivered.
	hub.Publish("mint", map[string]any{"nftId": 3})

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			if !strings.Contains(line, `"nftId":3`) {
				t.Fatalf("unexpected event payload %q", line)
			}
			return
		}
	}
	t.Fatalf("no event received: %v", scanner.Err())
}
