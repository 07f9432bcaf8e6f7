// Command hexctl is the hexvc CLI: a thin client over hexd's unix socket,
// plus a handful of commands that work directly against local files
// (opening book import) without needing the daemon running.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/araxis-games/hexvc/internal/config"
	"github.com/araxis-games/hexvc/internal/transport"
)

func main() {
	root := &cobra.Command{
		Use:   "hexctl",
		Short: "hexvc — drive the hexd engine session from the command line",
	}

	root.AddCommand(
		passthroughCmd("boardsize", "N", "resize the board (clears the session)"),
		passthroughCmd("play", "COLOR CELL", "play a stone"),
		passthroughCmd("genmove", "COLOR", "generate and play a move"),
		passthroughCmd("showboard", "", "print the current board"),
		passthroughCmd("vc-list", "COLOR full|semi", "list virtual connections"),
		passthroughCmd("vc-stats", "COLOR", "print VC builder statistics"),
		passthroughCmd("solve", "COLOR MAXNODES", "start an asynchronous solve job"),
		passthroughCmd("job", "ID", "check an asynchronous job's status"),
		passthroughCmd("undo", "", "undo the last move"),
		replCmd(),
		bookCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// clientFromConfig loads the on-disk config and returns a transport.Client
// pointed at the daemon's configured socket.
func clientFromConfig() *transport.Client {
	userDir, err := config.GetUserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hexctl: resolve config dir: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(userDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hexctl: load config: %v\n", err)
		os.Exit(1)
	}
	return transport.NewClient(cfg.SocketPathOrDefault(userDir))
}

// passthroughCmd builds a cobra command that joins verb and its arguments
// into a single protocol command line, dispatches it to the daemon, and
// prints the raw GTP-style response.
func passthroughCmd(verb, usageArgs, short string) *cobra.Command {
	use := verb
	if usageArgs != "" {
		use += " " + usageArgs
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(append([]string{verb}, args...), " ")
			resp, err := clientFromConfig().Dispatch(line)
			if err != nil {
				return fmt.Errorf("hexctl: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}
