package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repochunk/internal/config"
	"repochunk/internal/storage"
	"repochunk/pkg/types"
)

func writeFixture(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func testConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	return &config.Config{
		RepoPath:  root,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		CodeExts:  config.DefaultCodeExts,
		TextExts:  config.DefaultTextExts,
		MaxWords:  6,
		Workers:   2,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

const javaFixture = `// top note
public void first() {
    int alpha = 1;
    int beta = 2;
}
public void second() {
    int gamma = 3;
}`

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"README.md": "Hello world. Second sentence!",
		"big.java":  javaFixture,
		"main.go":   "package main\n\n// greets\nfunc main() {}\n",
		"notes.txt": "plain notes",
	})

	cfg := testConfig(t, root)
	stats, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TextFiles)
	assert.Equal(t, 2, stats.CodeFiles)
	assert.Equal(t, 1, stats.OtherFiles)
	assert.Equal(t, 0, stats.SkippedFiles)
	assert.Empty(t, stats.ErrorMessages)

	// File lists
	assert.Len(t, readLines(t, filepath.Join(cfg.OutputDir, FileTextList)), 1)
	assert.Len(t, readLines(t, filepath.Join(cfg.OutputDir, FileCodeList)), 2)
	assert.Len(t, readLines(t, filepath.Join(cfg.OutputDir, FileOtherList)), 1)

	// Content streams: both code files have code and comments.
	assert.Len(t, readLines(t, filepath.Join(cfg.OutputDir, FileCodeContent)), 2)
	assert.Len(t, readLines(t, filepath.Join(cfg.OutputDir, FileCommentContent)), 2)
	assert.Len(t, readLines(t, filepath.Join(cfg.OutputDir, FileOtherContent)), 1)

	// big.java exceeds the budget and splits into its two methods;
	// main.go fits and stays whole.
	blockLines := readLines(t, filepath.Join(cfg.OutputDir, FileCodeBlocks))
	require.Len(t, blockLines, 3)
	assert.Equal(t, 3, stats.CodeBlocks)

	var first, second, whole types.CodeBlockRecord
	require.NoError(t, json.Unmarshal([]byte(blockLines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(blockLines[1]), &second))
	require.NoError(t, json.Unmarshal([]byte(blockLines[2]), &whole))

	assert.Equal(t, "1.1", first.GlobalID)
	assert.Equal(t, types.LangJava, first.Lang)
	assert.True(t, strings.HasPrefix(first.Code, "public void first()"))
	assert.Equal(t, "1.2", second.GlobalID)
	assert.True(t, strings.HasPrefix(second.Code, "public void second()"))
	assert.Equal(t, "2.1", whole.GlobalID)
	assert.Equal(t, types.LangGo, whole.Lang)

	// One comment line per code file.
	assert.Equal(t, 2, stats.CommentLines)
	lineRecs := readLines(t, filepath.Join(cfg.OutputDir, FileCommentLines))
	require.Len(t, lineRecs, 2)
	var cl types.CommentLineRecord
	require.NoError(t, json.Unmarshal([]byte(lineRecs[0]), &cl))
	assert.Equal(t, "1.1", cl.GlobalID)
	assert.Equal(t, "// top note", cl.Comments)

	// Markdown and comment chunks land in JSON arrays.
	var mdChunks []types.TextChunkRecord
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, FileMarkdownChunks))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &mdChunks))
	require.Len(t, mdChunks, 1)
	assert.Equal(t, "1.1", mdChunks[0].GlobalID)
	assert.Equal(t, "Hello world. Second sentence!", mdChunks[0].Text)

	assert.Equal(t, 2, stats.CommentChunks)
}

func TestRunWithStore(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"README.md": "Hello world.",
		"big.java":  javaFixture,
	})

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	cfg := testConfig(t, root)
	ctx := context.Background()
	stats, err := New(cfg, store).Run(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, stats.RunID)

	run, err := store.GetRun(ctx, stats.RunID)
	require.NoError(t, err)
	assert.Equal(t, stats.CodeBlocks, run.CodeBlocks)
	assert.Equal(t, stats.MarkdownChunks, run.MarkdownChunks)

	count, err := store.CountUnits(ctx, stats.RunID)
	require.NoError(t, err)
	want := stats.CodeBlocks + stats.CommentLines + stats.MarkdownChunks + stats.CommentChunks
	assert.Equal(t, want, count)

	blocks, err := store.ListUnits(ctx, stats.RunID, storage.StreamCodeBlocks)
	require.NoError(t, err)
	require.Len(t, blocks, stats.CodeBlocks)
	assert.Equal(t, "1.1", blocks[0].GlobalID)
}

func TestRunIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"README.md": "Hello world. Second sentence!",
		"big.java":  javaFixture,
		"main.go":   "package main\n\nfunc main() {}\n",
	})

	cfg := testConfig(t, root)
	_, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	before := map[string][]byte{}
	names := []string{
		FileTextList, FileCodeList, FileOtherList,
		FileTextContent, FileCodeContent, FileCommentContent, FileOtherContent,
		FileCodeBlocks, FileCommentLines, FileMarkdownChunks, FileCommentChunks,
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err)
		before[name] = data
	}

	_, err = New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err)
		assert.Equal(t, before[name], data, "output %s changed between runs", name)
	}
}

func TestRunNoComments(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"main.go": "package main\n\nfunc main() {}\n",
	})

	cfg := testConfig(t, root)
	stats, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.CommentLines)
	assert.Equal(t, 0, stats.CommentChunks)

	// The comment content stream drops the empty record entirely.
	assert.Empty(t, readLines(t, filepath.Join(cfg.OutputDir, FileCommentContent)))

	// Chunk arrays stay valid JSON even when empty.
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, FileCommentChunks))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestRunNonMarkdownTextConsumesIndex(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"a.rst":     "restructured text here",
		"readme.md": "Hello world.",
	})

	cfg := testConfig(t, root)
	cfg.TextExts = []string{".md", ".rst"}

	stats, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TextFiles)
	assert.Equal(t, 1, stats.MarkdownChunks)

	// a.rst sorts first and is skipped, but still advances the file index.
	var chunks []types.TextChunkRecord
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, FileMarkdownChunks))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &chunks))
	require.Len(t, chunks, 1)
	assert.Equal(t, "2.1", chunks[0].GlobalID)
}

func TestRunBadRepoPath(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing"))
	_, err := New(cfg, nil).Run(context.Background())
	assert.Error(t, err)
}
