// Package ws streams vc.Statistics snapshots (the transport server
// broadcasts one after each dispatched command) to spectators over a WebSocket: one Envelope-tagged JSON
// message per update, one goroutine per connected client, broadcast
// throttled so a fast search can't flood a slow spectator.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"github.com/araxis-games/hexvc/internal/vc"
)

// Envelope wraps every message this package sends with a type tag, so
// clients can route without sniffing payload fields.
type Envelope struct {
	Type string `json:"type"`
}

// StatsMessage reports one Statistics snapshot for a color's build.
type StatsMessage struct {
	Type  string        `json:"type"`
	Color string        `json:"color"`
	Stats vc.Statistics `json:"stats"`
}

const TypeStats = "stats"

// Hub fans out StatsMessage broadcasts to every currently connected
// spectator. The zero value is not usable; construct with NewHub.
type Hub struct {
	limiter *rate.Limiter

	mu      sync.Mutex
	clients map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns a Hub that broadcasts at most ratePerSec messages/second
// across all subscribers combined, with burst allowed up to burst
// messages.
func NewHub(ratePerSec float64, burst int) *Hub {
	return &Hub{
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		clients: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket and registers the
// connection as a spectator until it disconnects or ctx is done.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	sub := &subscriber{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.clients[sub] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, sub)
		h.mu.Unlock()
		conn.CloseNow()
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-sub.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// Broadcast sends a Statistics snapshot to every connected spectator,
// throttled by the hub's shared rate limiter: a burst of snapshots from a
// fast incremental rebuild collapses to the limiter's sustained rate
// instead of queuing one message per build.
func (h *Hub) Broadcast(color string, stats vc.Statistics) {
	if !h.limiter.Allow() {
		return
	}
	data, err := json.Marshal(StatsMessage{Type: TypeStats, Color: color, Stats: stats})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.clients {
		select {
		case sub.send <- data:
		default:
			// Slow client: drop this snapshot rather than block the broadcaster.
		}
	}
}

// Count returns the number of currently connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
