package storage

import (
	"context"
	"time"
)

// Storage persists chunking runs and their emitted units. It is an
// optional sink: the pipeline's file outputs never depend on it.
type Storage interface {
	// Run operations
	CreateRun(ctx context.Context, run *Run) error
	FinishRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Unit operations
	InsertUnits(ctx context.Context, units []*Unit) error
	CountUnits(ctx context.Context, runID string) (int, error)
	ListUnits(ctx context.Context, runID, stream string) ([]*Unit, error)

	Close() error
}

// Run is one pipeline invocation.
type Run struct {
	ID        string
	RepoPath  string
	OutputDir string
	MaxWords  int

	TextFiles      int
	CodeFiles      int
	OtherFiles     int
	CodeBlocks     int
	CommentLines   int
	MarkdownChunks int
	CommentChunks  int
	SkippedFiles   int

	StartedAt  time.Time
	FinishedAt time.Time
}

// Unit is one emitted record: a code block, a comment line, or a prose
// chunk. Stream names match the output file stems.
type Unit struct {
	ID        int64
	RunID     string
	Stream    string
	GlobalID  string
	Path      string
	Lang      string
	Content   string
	WordCount int
}

// Stream names for stored units.
const (
	StreamCodeBlocks     = "code_blocks"
	StreamCommentLines   = "comment_lines"
	StreamMarkdownChunks = "markdown_chunks"
	StreamCommentChunks  = "comment_chunks"
)
