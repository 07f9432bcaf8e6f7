package book

import (
	"database/sql"
	"fmt"
)

// Game is an archived SGF record, keyed by a caller-supplied ID (typically
// derived from the source file name).
type Game struct {
	ID          string
	BoardSize   int
	BlackPlayer string
	WhitePlayer string
	Winner      string
	SGF         string
}

// ImportGame archives g, replacing any existing row with the same ID.
func (s *Store) ImportGame(g Game) error {
	_, err := s.db.Exec(`INSERT INTO games (id, board_size, black_player, white_player, winner, sgf)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET board_size = excluded.board_size, black_player = excluded.black_player,
			white_player = excluded.white_player, winner = excluded.winner, sgf = excluded.sgf`,
		g.ID, g.BoardSize, nullIfEmpty(g.BlackPlayer), nullIfEmpty(g.WhitePlayer), nullIfEmpty(g.Winner), g.SGF)
	if err != nil {
		return fmt.Errorf("book: import game %s: %w", g.ID, err)
	}
	return nil
}

// GetGame returns the archived game for id, or ok=false if none exists.
func (s *Store) GetGame(id string) (g Game, ok bool, err error) {
	var black, white, winner sql.NullString
	row := s.db.QueryRow(`SELECT id, board_size, black_player, white_player, winner, sgf FROM games WHERE id = ?`, id)
	if err := row.Scan(&g.ID, &g.BoardSize, &black, &white, &winner, &g.SGF); err != nil {
		if err == sql.ErrNoRows {
			return Game{}, false, nil
		}
		return Game{}, false, fmt.Errorf("book: get game %s: %w", id, err)
	}
	g.BlackPlayer, g.WhitePlayer, g.Winner = black.String, white.String, winner.String
	return g, true, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
