// Package transport serves a protocol.Dispatcher and an opening book.Store
// over HTTP-over-unix-socket: one long-lived local process (hexd) holds
// the engine session, and short-lived CLI invocations (hexctl) talk to it
// over a small JSON API instead of re-loading pattern files and re-running
// BuildStatic on every command.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/book"
	"github.com/araxis-games/hexvc/internal/protocol"
	"github.com/araxis-games/hexvc/internal/ws"
)

// Server holds the single live engine session and opening book this daemon
// process serves.
type Server struct {
	disp       *protocol.Dispatcher
	book       *book.Store
	socketPath string
	hub        *ws.Hub
}

// NewServer constructs a Server; disp and store are shared for the life
// of the process. A stats-broadcast Hub is created automatically;
// spectators connect over GET /ws/stats.
func NewServer(disp *protocol.Dispatcher, store *book.Store, socketPath string) *Server {
	return &Server{disp: disp, book: store, socketPath: socketPath, hub: ws.NewHub(20, 5)}
}

// ListenAndServe runs the HTTP server over a unix socket at s.socketPath
// until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("transport: listen unix %s: %w", s.socketPath, err)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	httpSrv := &http.Server{Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutCtx)
		os.Remove(s.socketPath)
		return nil
	case err := <-errCh:
		os.Remove(s.socketPath)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /dispatch", s.handleDispatch)
	mux.HandleFunc("GET /book/lookup", s.handleBookLookup)
	mux.HandleFunc("POST /book/record", s.handleBookRecord)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /ws/stats", s.hub.ServeHTTP)
}

type dispatchRequest struct {
	Line string `json:"line"`
}

type dispatchResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	resp := s.disp.Dispatch(req.Line)
	s.hub.Broadcast("black", s.disp.Stats(board.Black))
	s.hub.Broadcast("white", s.disp.Stats(board.White))
	writeJSON(w, http.StatusOK, dispatchResponse{Response: resp})
}

type bookMoveResponse struct {
	Cell   int     `json:"cell"`
	Visits int     `json:"visits"`
	Score  float64 `json:"score"`
}

func (s *Server) handleBookLookup(w http.ResponseWriter, r *http.Request) {
	positionID := r.URL.Query().Get("position")
	if positionID == "" {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}
	moves, err := s.book.Lookup(positionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	result := make([]bookMoveResponse, 0, len(moves))
	for _, m := range moves {
		result = append(result, bookMoveResponse{Cell: m.Cell, Visits: m.Visits, Score: m.Score})
	}
	writeJSON(w, http.StatusOK, result)
}

type bookRecordRequest struct {
	PositionID string  `json:"position_id"`
	BoardSize  int     `json:"board_size"`
	ToMove     string  `json:"to_move"`
	Cell       int     `json:"cell"`
	Visits     int     `json:"visits"`
	Score      float64 `json:"score"`
}

func (s *Server) handleBookRecord(w http.ResponseWriter, r *http.Request) {
	var req bookRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	var toMove board.Color
	switch req.ToMove {
	case "black", "b":
		toMove = board.Black
	case "white", "w":
		toMove = board.White
	default:
		writeError(w, http.StatusBadRequest, "to_move must be black or white")
		return
	}
	err := s.book.RecordMove(req.PositionID, req.BoardSize, toMove, book.Move{
		Cell: req.Cell, Visits: req.Visits, Score: req.Score,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"evaluation": s.disp.Evaluate(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
