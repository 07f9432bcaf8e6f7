package book

import (
	"database/sql"
	"fmt"

	"github.com/araxis-games/hexvc/internal/board"
)

// Move is one recommended reply for a book position: the cell to play, how
// many times it has been visited by prior analysis, and its accumulated
// score (engine-defined scale; higher is better for the side to move).
type Move struct {
	Cell   int
	Visits int
	Score  float64
}

// EnsurePosition inserts positionID if it isn't already present.
func (s *Store) EnsurePosition(positionID string, boardSize int, toMove board.Color) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO positions (id, board_size, to_move) VALUES (?, ?, ?)`,
		positionID, boardSize, toMove.String())
	if err != nil {
		return fmt.Errorf("book: ensure position %s: %w", positionID, err)
	}
	return nil
}

// RecordMove upserts a move's visit count and score for positionID,
// creating the position row first if needed.
func (s *Store) RecordMove(positionID string, boardSize int, toMove board.Color, m Move) error {
	if err := s.EnsurePosition(positionID, boardSize, toMove); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO book_moves (position_id, cell, visits, score) VALUES (?, ?, ?, ?)
		ON CONFLICT(position_id, cell) DO UPDATE SET visits = excluded.visits, score = excluded.score`,
		positionID, m.Cell, m.Visits, m.Score)
	if err != nil {
		return fmt.Errorf("book: record move for %s: %w", positionID, err)
	}
	return nil
}

// Lookup returns every book move recorded for positionID, most-visited
// first. A position with no book entry returns an empty slice, not an
// error.
func (s *Store) Lookup(positionID string) ([]Move, error) {
	rows, err := s.db.Query(`SELECT cell, visits, score FROM book_moves WHERE position_id = ? ORDER BY visits DESC`, positionID)
	if err != nil {
		return nil, fmt.Errorf("book: lookup %s: %w", positionID, err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.Cell, &m.Visits, &m.Score); err != nil {
			return nil, fmt.Errorf("book: scan move for %s: %w", positionID, err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("book: iterate moves for %s: %w", positionID, err)
	}
	return moves, nil
}

// Best returns the highest-visit-count move for positionID, or ok=false if
// there is none.
func (s *Store) Best(positionID string) (m Move, ok bool, err error) {
	row := s.db.QueryRow(`SELECT cell, visits, score FROM book_moves WHERE position_id = ? ORDER BY visits DESC LIMIT 1`, positionID)
	if err := row.Scan(&m.Cell, &m.Visits, &m.Score); err != nil {
		if err == sql.ErrNoRows {
			return Move{}, false, nil
		}
		return Move{}, false, fmt.Errorf("book: best move for %s: %w", positionID, err)
	}
	return m, true, nil
}
