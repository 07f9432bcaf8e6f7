// Command hexd is the hexvc daemon: it loads config and pattern files
// once, then serves a single engine session over a unix socket for
// hexctl (or any other transport.Client) to drive.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/araxis-games/hexvc/internal/config"
	"github.com/araxis-games/hexvc/internal/daemon"
	"github.com/araxis-games/hexvc/internal/logger"
)

func main() {
	var boardSize int
	var socketFlag string
	var watchFlag bool

	root := &cobra.Command{
		Use:   "hexd",
		Short: "hexvc daemon: serves one VC engine session over a unix socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			userDir, err := config.GetUserConfigDir()
			if err != nil {
				return fmt.Errorf("hexd: resolve config dir: %w", err)
			}
			if err := config.EnsureConfigDirs(userDir, userDir); err != nil {
				return fmt.Errorf("hexd: create config dirs: %w", err)
			}

			cfg, err := config.Load(userDir)
			if err != nil {
				return fmt.Errorf("hexd: load config: %w", err)
			}
			if boardSize > 0 {
				cfg.BoardSize = boardSize
			}
			if socketFlag != "" {
				cfg.SocketPath = socketFlag
			}
			cfg.WatchPatterns = cfg.WatchPatterns || watchFlag

			if err := logger.Init(cfg.LogLevel, cfg.LogFile, logger.Format(cfg.LogFormat)); err != nil {
				return fmt.Errorf("hexd: init logger: %w", err)
			}

			return daemon.Run(cfg, userDir)
		},
	}

	root.Flags().IntVar(&boardSize, "board-size", 0, "board size override (default: config or 11)")
	root.Flags().StringVar(&socketFlag, "socket", "", "unix socket path override")
	root.Flags().BoolVar(&watchFlag, "watch", false, "reload pattern files on change (requires pattern-path to be set)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
