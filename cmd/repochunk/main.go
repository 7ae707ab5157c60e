// Package main provides the entry point for the repochunk CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repochunk/cmd/repochunk/commands"
	"repochunk/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repochunk",
		Short: "Chunk source repositories into size-bounded content units",
		Long: `repochunk classifies a repository's files, separates code from
comments, splits code along structural boundaries, and packs prose into
word-budgeted chunks with stable hierarchical identifiers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewChunkCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "repochunk %s (built: %s, sqlite: %s)\n",
				version, buildTime, storage.BuildMode)
		},
	}
}
