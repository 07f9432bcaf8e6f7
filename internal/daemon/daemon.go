// Package daemon runs hexd: it loads the pattern library once, builds a
// protocol.Dispatcher, and serves it over internal/transport's
// unix-socket HTTP server until the process receives a termination signal.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/araxis-games/hexvc/internal/book"
	"github.com/araxis-games/hexvc/internal/config"
	"github.com/araxis-games/hexvc/internal/logger"
	"github.com/araxis-games/hexvc/internal/pattern"
	"github.com/araxis-games/hexvc/internal/protocol"
	"github.com/araxis-games/hexvc/internal/transport"
)

var log = logger.Module("daemon")

// Run loads cfg's pattern library and opening book, constructs one
// protocol.Dispatcher, and serves it until ctx-independent OS signals
// (SIGTERM, SIGINT) request shutdown.
func Run(cfg *config.Config, userConfigDir string) error {
	lib, err := pattern.Load(cfg.PatternPath)
	if err != nil {
		return fmt.Errorf("daemon: load pattern library: %w", err)
	}

	bookPath := cfg.BookPathOrDefault(userConfigDir)
	store, err := book.Open(bookPath)
	if err != nil {
		return fmt.Errorf("daemon: open book: %w", err)
	}
	defer store.Close()

	disp := protocol.New(cfg.BoardSize, lib, cfg.Engine.VCParams())

	socketPath := cfg.SocketPathOrDefault(userConfigDir)
	srv := transport.NewServer(disp, store, socketPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchPatterns && cfg.PatternPath != "" {
		go func() {
			if err := pattern.Watch(ctx, log, cfg.PatternPath, disp.SetLibrary); err != nil {
				log.Warn("pattern watch stopped", "error", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		log.Info("transport listening", "socket", socketPath)
		errCh <- srv.ListenAndServe(ctx)
	}()

	log.Info("hexd daemon started", "board_size", cfg.BoardSize, "book", bookPath)

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", "signal", sig.String())
		cancel()
		time.Sleep(200 * time.Millisecond)
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			cancel()
			return fmt.Errorf("daemon: transport error: %w", err)
		}
	}

	return nil
}
