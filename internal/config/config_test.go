package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.MaxWords)
	assert.Equal(t, DefaultCodeExts, cfg.CodeExts)
	assert.Equal(t, DefaultTextExts, cfg.TextExts)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REPOCHUNK_REPO_PATH", "/tmp/repo")
	t.Setenv("REPOCHUNK_MAX_WORDS", "128")
	t.Setenv("REPOCHUNK_CODE_EXT", "go, JAVA,py")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/repo", cfg.RepoPath)
	assert.Equal(t, 128, cfg.MaxWords)
	assert.Equal(t, []string{".go", ".java", ".py"}, cfg.CodeExts)
}

func TestValidate(t *testing.T) {
	cfg := &Config{RepoPath: "/r", OutputDir: "/o", MaxWords: 512}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, (&Config{OutputDir: "/o", MaxWords: 1}).Validate())
	assert.Error(t, (&Config{RepoPath: "/r", MaxWords: 1}).Validate())
	assert.Error(t, (&Config{RepoPath: "/r", OutputDir: "/o", MaxWords: 0}).Validate())
}

func TestParseExtList(t *testing.T) {
	assert.Nil(t, ParseExtList(""))
	assert.Equal(t, []string{".go", ".md"}, ParseExtList(".go,md"))
}

func TestNormalizeExts(t *testing.T) {
	got := NormalizeExts([]string{" .Go ", "JAVA", "", "  "})
	assert.Equal(t, []string{".go", ".java"}, got)
}

func TestExtSet(t *testing.T) {
	set := ExtSet([]string{".go", ".md"})
	assert.True(t, set[".go"])
	assert.False(t, set[".py"])
}
