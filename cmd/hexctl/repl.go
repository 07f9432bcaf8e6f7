package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// replCmd opens an interactive stdin/stdout session against the daemon,
// one protocol command line per REPL line, matching the line-oriented
// GTP-style contract internal/protocol.Dispatcher implements.
func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session: read command lines from stdin, print responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromConfig()
			interactive := term.IsTerminal(int(os.Stdin.Fd()))

			scanner := bufio.NewScanner(os.Stdin)
			for {
				if interactive {
					fmt.Print("hexvc> ")
				}
				if !scanner.Scan() {
					break
				}
				line := scanner.Text()
				if line == "" {
					continue
				}
				resp, err := client.Dispatch(line)
				if err != nil {
					fmt.Fprintf(os.Stderr, "hexctl: %v\n", err)
					continue
				}
				fmt.Println(resp)
				if line == "quit" {
					break
				}
			}
			return scanner.Err()
		},
	}
}
