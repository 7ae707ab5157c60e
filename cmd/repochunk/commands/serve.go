package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"repochunk/internal/mcp"
)

// NewServeCommand builds the serve command, which runs the MCP stdio
// server. Log output goes to stderr; stdout carries the MCP protocol.
func NewServeCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chunking pipeline over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log.SetOutput(os.Stderr)

			if dbPath == "" {
				dbPath = os.Getenv("REPOCHUNK_DB_PATH")
			}
			server, err := mcp.NewServer(dbPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				log.Println("MCP server ready, listening on stdio...")
				errChan <- server.Serve(ctx)
			}()

			select {
			case sig := <-sigChan:
				log.Printf("Received signal %v, shutting down...", sig)
				cancel()
				return nil
			case err := <-errChan:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file recording runs and units (default ~/.repochunk/repochunk.db)")

	return cmd
}
