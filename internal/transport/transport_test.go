package transport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/araxis-games/hexvc/internal/book"
	"github.com/araxis-games/hexvc/internal/pattern"
	"github.com/araxis-games/hexvc/internal/protocol"
	"github.com/araxis-games/hexvc/internal/vc"
)

func setup(t *testing.T) (*Client, func()) {
	t.Helper()

	lib, err := pattern.Load("")
	if err != nil {
		t.Fatalf("load pattern library: %v", err)
	}
	disp := protocol.New(5, lib, vc.DefaultParams())

	store, err := book.Open(":memory:")
	if err != nil {
		t.Fatalf("open book: %v", err)
	}

	sock := filepath.Join(t.TempDir(), "hexd.sock")
	srv := NewServer(disp, store, sock)

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	go func() {
		go func() {
			for {
				if _, err := os.Stat(sock); err == nil {
					close(ready)
					return
				}
				time.Sleep(5 * time.Millisecond)
			}
		}()
		srv.ListenAndServe(ctx)
	}()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("server did not start in time")
	}

	client := NewClient(sock)
	return client, func() {
		cancel()
		store.Close()
	}
}

func TestDispatchRoundTrip(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()

	resp, err := client.Dispatch("play black a1")
	if err != nil {
		t.Fatalf("dispatch play: %v", err)
	}
	if resp != "= ok" {
		t.Fatalf("play response = %q, want %q", resp, "= ok")
	}

	resp, err = client.Dispatch("showboard")
	if err != nil {
		t.Fatalf("dispatch showboard: %v", err)
	}
	if resp == "" {
		t.Fatal("showboard returned empty response")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()

	resp, err := client.Dispatch("frobnicate")
	if err != nil {
		t.Fatalf("dispatch frobnicate: %v", err)
	}
	if resp[0] != '?' {
		t.Fatalf("unknown command response = %q, want a %q response", resp, "?")
	}
}

func TestBookRecordAndLookup(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()

	if err := client.BookRecord(bookRecordRequest{
		PositionID: "pos-1",
		BoardSize:  11,
		ToMove:     "black",
		Cell:       42,
		Visits:     10,
		Score:      0.75,
	}); err != nil {
		t.Fatalf("book record: %v", err)
	}

	moves, err := client.BookLookup("pos-1")
	if err != nil {
		t.Fatalf("book lookup: %v", err)
	}
	if len(moves) != 1 || moves[0].Cell != 42 || moves[0].Visits != 10 {
		t.Fatalf("book lookup = %+v, want one move on cell 42 with 10 visits", moves)
	}
}

func TestStatus(t *testing.T) {
	client, cleanup := setup(t)
	defer cleanup()

	if _, err := client.Status(); err != nil {
		t.Fatalf("status: %v", err)
	}
}
