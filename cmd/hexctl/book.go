package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/book"
	"github.com/araxis-games/hexvc/internal/config"
	"github.com/araxis-games/hexvc/internal/sgf"
)

// bookCmd groups the opening-book subcommands. Import works directly
// against the sqlite file (no daemon required for a bulk local
// operation); lookup goes through the live daemon so it reflects the
// book the daemon itself reads from.
func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Opening book: import SGF game records, look up recorded replies",
	}
	cmd.AddCommand(bookImportCmd(), bookLookupCmd())
	return cmd
}

func bookImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import SGF game records, recording each played reply as a book move",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userDir, err := config.GetUserConfigDir()
			if err != nil {
				return fmt.Errorf("hexctl: resolve config dir: %w", err)
			}
			cfg, err := config.Load(userDir)
			if err != nil {
				return fmt.Errorf("hexctl: load config: %w", err)
			}
			store, err := book.Open(cfg.BookPathOrDefault(userDir))
			if err != nil {
				return fmt.Errorf("hexctl: open book: %w", err)
			}
			defer store.Close()

			for _, path := range args {
				if err := importSGFFile(store, path); err != nil {
					fmt.Fprintf(os.Stderr, "hexctl: %s: %v\n", path, err)
					continue
				}
			}
			return nil
		},
	}
}

func importSGFFile(store *book.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	game, warnings, err := sgf.Parse(string(data))
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "hexctl: %s: %s\n", path, w.Message)
	}

	b := board.New(game.BoardSize)
	pos := board.NewPosition(b)

	imported := 0
	for _, mv := range game.Moves {
		cell := mv.Cell(b)
		if b.IsEdge(cell) || pos.Color(cell) != board.Empty {
			fmt.Fprintf(os.Stderr, "hexctl: %s: skipping illegal move at cell %d\n", path, cell)
			continue
		}
		positionID := pos.Hash()
		err := store.RecordMove(positionID, game.BoardSize, mv.Color, book.Move{
			Cell: cell, Visits: 1, Score: 1.0,
		})
		if err != nil {
			return err
		}
		pos.Play(cell, mv.Color)
		imported++
	}

	gameID := path
	winner := ""
	if len(game.Moves) > 0 {
		winner = game.Moves[len(game.Moves)-1].Color.String()
	}
	if err := store.ImportGame(book.Game{
		ID:        gameID,
		BoardSize: game.BoardSize,
		Winner:    winner,
		SGF:       string(data),
	}); err != nil {
		return err
	}

	fmt.Printf("%s: imported %d moves\n", path, imported)
	return nil
}

func bookLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup POSITION_ID",
		Short: "Print recorded book moves for a position ID (as printed by 'hexctl showboard')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moves, err := clientFromConfig().BookLookup(args[0])
			if err != nil {
				return fmt.Errorf("hexctl: %w", err)
			}
			if len(moves) == 0 {
				fmt.Println("no book moves recorded")
				return nil
			}
			for _, m := range moves {
				fmt.Printf("cell=%d visits=%d score=%.3f\n", m.Cell, m.Visits, m.Score)
			}
			return nil
		},
	}
}
