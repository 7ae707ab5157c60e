// Package commands implements CLI command handlers for repochunk.
package commands

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"repochunk/internal/chunker"
	"repochunk/internal/config"
	"repochunk/internal/pipeline"
	"repochunk/internal/storage"
)

// NewChunkCommand builds the chunk command.
func NewChunkCommand() *cobra.Command {
	var (
		repoPath  string
		outputDir string
		codeExt   string
		textExt   string
		maxWords  int
		dbPath    string
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Classify repository files and emit code blocks and prose chunks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override environment values.
			if repoPath != "" {
				cfg.RepoPath = repoPath
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if exts := config.ParseExtList(codeExt); len(exts) > 0 {
				cfg.CodeExts = exts
			}
			if exts := config.ParseExtList(textExt); len(exts) > 0 {
				cfg.TextExts = exts
			}
			if cmd.Flags().Changed("max-words") {
				cfg.MaxWords = maxWords
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log.SetOutput(os.Stderr)

			var store storage.Storage
			if cfg.DBPath != "" {
				s, err := storage.NewSQLiteStorage(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("failed to open run database: %w", err)
				}
				defer func() { _ = s.Close() }()
				store = s
			}

			stats, err := pipeline.New(cfg, store).Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Run %s finished in %s\n", stats.RunID, stats.Duration.Round(time.Millisecond))
			fmt.Fprintf(os.Stdout, "  files:  %d text, %d code, %d other (%d skipped)\n",
				stats.TextFiles, stats.CodeFiles, stats.OtherFiles, stats.SkippedFiles)
			fmt.Fprintf(os.Stdout, "  units:  %d code blocks, %d comment lines, %d markdown chunks, %d comment chunks\n",
				stats.CodeBlocks, stats.CommentLines, stats.MarkdownChunks, stats.CommentChunks)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo-path", "", "path to the repository to scan (required)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory path (required)")
	cmd.Flags().StringVar(&codeExt, "code-ext", "", "comma-separated code extensions overriding the defaults")
	cmd.Flags().StringVar(&textExt, "text-ext", "", "comma-separated text extensions overriding the defaults")
	cmd.Flags().IntVar(&maxWords, "max-words", chunker.DefaultMaxWords, "maximum words per chunk")
	cmd.Flags().StringVar(&dbPath, "db", "", "optional SQLite database recording runs and units")
	cmd.Flags().IntVar(&workers, "workers", 0, "extraction workers (default: one per CPU)")

	return cmd
}
