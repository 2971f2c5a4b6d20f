package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	_, ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish("mint", map[string]any{"nftId": 7})

	select {
	case payload := <-ch:
		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		if ev.Type != "mint" {
			t.Fatalf("expected mint event, got %q", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, _, cancel := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Subscribers())
	}

	cancel()
	if hub.Subscribers() != 0 {
		t.Fatalf("expected 0 subscribers after cancel, got %d", hub.Subscribers())
	}
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, _, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("mint", map[string]any{"nftId": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}
