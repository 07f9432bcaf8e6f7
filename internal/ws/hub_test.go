package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/araxis-games/hexvc/internal/vc"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(100, 10)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	// Give the server goroutine a moment to register the connection.
	for i := 0; i < 50 && hub.Count() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Count() != 1 {
		t.Fatalf("hub.Count() = %d, want 1", hub.Count())
	}

	hub.Broadcast("black", vc.Statistics{BaseAttempts: 3, BaseSuccesses: 2})

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg StatsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeStats || msg.Color != "black" || msg.Stats.BaseAttempts != 3 {
		t.Fatalf("broadcast message = %+v, want type=%q color=black base_attempts=3", msg, TypeStats)
	}
}

func TestHubBroadcastThrottled(t *testing.T) {
	hub := NewHub(1, 1)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	for i := 0; i < 50 && hub.Count() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}

	// Burst of 1 is consumed by the first broadcast; the second is dropped
	// immediately rather than queued.
	hub.Broadcast("black", vc.Statistics{BaseAttempts: 1})
	hub.Broadcast("black", vc.Statistics{BaseAttempts: 2})

	readCtx, readCancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer readCancel()
	_, data, err := conn.Read(readCtx)
	if err != nil {
		t.Fatalf("read first broadcast: %v", err)
	}
	var msg StatsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Stats.BaseAttempts != 1 {
		t.Fatalf("first broadcast base_attempts = %d, want 1", msg.Stats.BaseAttempts)
	}
}
