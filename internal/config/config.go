// Package config holds the pipeline configuration. Values resolve in
// order: command-line flags, then environment variables (a .env file is
// honored when present), then defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Defaults for the extension sets and word budget.
var (
	DefaultCodeExts = []string{".go", ".java", ".js", ".ts", ".php", ".py", ".rb"}
	DefaultTextExts = []string{".md"}
)

// Config is the full pipeline configuration.
type Config struct {
	RepoPath  string `env:"REPOCHUNK_REPO_PATH"`
	OutputDir string `env:"REPOCHUNK_OUTPUT_DIR"`

	CodeExts []string `env:"REPOCHUNK_CODE_EXT" envSeparator:","`
	TextExts []string `env:"REPOCHUNK_TEXT_EXT" envSeparator:","`
	MaxWords int      `env:"REPOCHUNK_MAX_WORDS" envDefault:"512"`

	// DBPath, when set, additionally records runs and emitted units in a
	// SQLite database.
	DBPath string `env:"REPOCHUNK_DB_PATH"`

	// Workers bounds extraction parallelism. Zero means one per CPU.
	Workers int `env:"REPOCHUNK_WORKERS"`
}

// Load builds a Config from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.CodeExts = NormalizeExts(cfg.CodeExts)
	cfg.TextExts = NormalizeExts(cfg.TextExts)
	if len(cfg.CodeExts) == 0 {
		cfg.CodeExts = DefaultCodeExts
	}
	if len(cfg.TextExts) == 0 {
		cfg.TextExts = DefaultTextExts
	}
	return cfg, nil
}

// Validate checks the fields a chunk run requires.
func (c *Config) Validate() error {
	if c.RepoPath == "" {
		return fmt.Errorf("repo path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir is required")
	}
	if c.MaxWords <= 0 {
		return fmt.Errorf("max words must be positive, got %d", c.MaxWords)
	}
	return nil
}

// ParseExtList splits a comma-separated extension list and normalizes each
// entry. Empty input yields nil so the caller can fall back to defaults.
func ParseExtList(csv string) []string {
	if csv == "" {
		return nil
	}
	return NormalizeExts(strings.Split(csv, ","))
}

// NormalizeExts trims, lowercases, and dot-prefixes extension entries,
// dropping empty ones.
func NormalizeExts(exts []string) []string {
	var out []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// ExtSet converts an extension list to a membership set.
func ExtSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[e] = true
	}
	return set
}
