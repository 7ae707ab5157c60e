// Package pipeline orchestrates the chunking stages: classify -> extract ->
// split/chunk -> emit. Stages run in sequence; each consumes the complete
// output of the previous one, so output order is deterministic and re-runs
// on unchanged input produce byte-identical files.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"repochunk/internal/chunker"
	"repochunk/internal/classifier"
	"repochunk/internal/config"
	"repochunk/internal/emitter"
	"repochunk/internal/extractor"
	"repochunk/internal/ids"
	"repochunk/internal/splitter"
	"repochunk/internal/storage"
	"repochunk/pkg/types"
)

// Output file names, one per emitted stream.
const (
	FileTextList       = "text_files.jsonl"
	FileCodeList       = "code_files.jsonl"
	FileOtherList      = "other_files.jsonl"
	FileTextContent    = "text_content_files.jsonl"
	FileCodeContent    = "code_content_only.jsonl"
	FileCommentContent = "comments_content_only.jsonl"
	FileOtherContent   = "other_content_files.jsonl"
	FileCodeBlocks     = "code_content_small_trunk.jsonl"
	FileCommentLines   = "comments_content_small_trunk.jsonl"
	FileMarkdownChunks = "text_content_small_size.json"
	FileCommentChunks  = "comments_content_small_size.json"
)

// Stats summarizes one pipeline run.
type Stats struct {
	RunID string

	TextFiles  int
	CodeFiles  int
	OtherFiles int

	CodeBlocks     int
	CommentLines   int
	MarkdownChunks int
	CommentChunks  int

	SkippedFiles  int
	ErrorMessages []string

	Duration time.Duration
}

// Runner executes the pipeline for one configuration.
type Runner struct {
	cfg       *config.Config
	extractor *extractor.Extractor
	store     storage.Storage
	runID     string
}

// New creates a Runner. store may be nil; the record store is optional.
func New(cfg *config.Config, store storage.Storage) *Runner {
	return &Runner{
		cfg:       cfg,
		extractor: extractor.New(nil, cfg.Workers),
		store:     store,
	}
}

// Run executes all stages and writes the output artifacts. It returns an
// error only for fatal conditions (unreadable repo root, unwritable output
// directory); per-file failures are logged, counted, and skipped.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	r.runID = uuid.NewString()
	stats := &Stats{RunID: r.runID}

	info, err := os.Stat(r.cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("repository root not readable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository root %s is not a directory", r.cfg.RepoPath)
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("output directory not writable: %w", err)
	}

	if r.store != nil {
		run := &storage.Run{
			ID:        stats.RunID,
			RepoPath:  r.cfg.RepoPath,
			OutputDir: r.cfg.OutputDir,
			MaxWords:  r.cfg.MaxWords,
			StartedAt: start,
		}
		if err := r.store.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	// Classification
	files, err := classifier.Classify(r.cfg.RepoPath,
		config.ExtSet(r.cfg.TextExts), config.ExtSet(r.cfg.CodeExts))
	if err != nil {
		return nil, fmt.Errorf("failed to classify repository: %w", err)
	}
	stats.TextFiles = len(files.Text)
	stats.CodeFiles = len(files.Code)
	stats.OtherFiles = len(files.Other)
	log.Printf("classified %d text, %d code, %d other files",
		stats.TextFiles, stats.CodeFiles, stats.OtherFiles)

	if err := r.writeFileLists(files); err != nil {
		return nil, err
	}

	// Content extraction
	textContent, errs := r.extractor.ReadContents(ctx, files.Text)
	stats.ErrorMessages = append(stats.ErrorMessages, errs...)

	codeRecs, commentRecs, errs := r.extractor.ExtractCode(ctx, files.Code)
	stats.ErrorMessages = append(stats.ErrorMessages, errs...)

	otherContent, errs := r.extractor.ReadContents(ctx, files.Other)
	stats.ErrorMessages = append(stats.ErrorMessages, errs...)

	stats.SkippedFiles = len(stats.ErrorMessages)
	for _, msg := range stats.ErrorMessages {
		log.Printf("skipped: %s", msg)
	}

	if err := r.writeContentStreams(textContent, codeRecs, commentRecs, otherContent); err != nil {
		return nil, err
	}

	// Structural code blocks
	if stats.CodeBlocks, err = r.emitCodeBlocks(ctx, codeRecs); err != nil {
		return nil, err
	}
	log.Printf("emitted %d code blocks", stats.CodeBlocks)

	// Comment lines
	if stats.CommentLines, err = r.emitCommentLines(ctx, commentRecs); err != nil {
		return nil, err
	}

	// Prose chunks
	if stats.MarkdownChunks, err = r.emitMarkdownChunks(ctx, textContent); err != nil {
		return nil, err
	}
	if stats.CommentChunks, err = r.emitCommentChunks(ctx, commentRecs); err != nil {
		return nil, err
	}
	log.Printf("emitted %d comment lines, %d markdown chunks, %d comment chunks",
		stats.CommentLines, stats.MarkdownChunks, stats.CommentChunks)

	stats.Duration = time.Since(start)

	if r.store != nil {
		run := &storage.Run{
			ID:             stats.RunID,
			TextFiles:      stats.TextFiles,
			CodeFiles:      stats.CodeFiles,
			OtherFiles:     stats.OtherFiles,
			CodeBlocks:     stats.CodeBlocks,
			CommentLines:   stats.CommentLines,
			MarkdownChunks: stats.MarkdownChunks,
			CommentChunks:  stats.CommentChunks,
			SkippedFiles:   stats.SkippedFiles,
			FinishedAt:     time.Now(),
		}
		if err := r.store.FinishRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to finalize run record: %w", err)
		}
	}

	return stats, nil
}

// writeFileLists emits the three file-list streams.
func (r *Runner) writeFileLists(files *classifier.Result) error {
	lists := []struct {
		name  string
		kind  types.FileKind
		paths []string
	}{
		{FileTextList, types.KindText, files.Text},
		{FileCodeList, types.KindCode, files.Code},
		{FileOtherList, types.KindOther, files.Other},
	}

	for _, l := range lists {
		w, err := emitter.NewLineWriter(r.outPath(l.name))
		if err != nil {
			return err
		}
		for _, p := range l.paths {
			if err := w.Write(&types.FileRecord{Type: l.kind, Path: p}); err != nil {
				_ = w.Close()
				return err
			}
		}
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}

// writeContentStreams emits the extracted content streams. Code and
// comment records with empty content were already dropped by the
// extractor, so downstream file indices count positions in these streams.
func (r *Runner) writeContentStreams(text []*types.ContentRecord, code []*types.CodeRecord,
	comments []*types.CommentRecord, other []*types.ContentRecord) error {

	if err := writeStream(r.outPath(FileTextContent), text); err != nil {
		return err
	}
	if err := writeStream(r.outPath(FileCodeContent), code); err != nil {
		return err
	}
	if err := writeStream(r.outPath(FileCommentContent), comments); err != nil {
		return err
	}
	return writeStream(r.outPath(FileOtherContent), other)
}

// emitCodeBlocks splits each code record that exceeds the word budget into
// structural blocks and stamps every block with a global ID.
func (r *Runner) emitCodeBlocks(ctx context.Context, recs []*types.CodeRecord) (int, error) {
	w, err := emitter.NewLineWriter(r.outPath(FileCodeBlocks))
	if err != nil {
		return 0, err
	}
	defer func() { _ = w.Close() }()

	var assigner ids.Assigner
	var units []*storage.Unit
	total := 0

	for _, rec := range recs {
		assigner.NextFile()
		lang := types.DetectLang(rec.Path)

		var blocks []string
		if types.CountWords(rec.Code) <= r.cfg.MaxWords {
			blocks = []string{rec.Code}
		} else {
			blocks = trimBlocks(splitter.ForLang(lang).Split(rec.Code), rec.Code)
		}

		for _, block := range blocks {
			record := &types.CodeBlockRecord{
				GlobalID: assigner.NextUnit(),
				Path:     rec.Path,
				Lang:     lang,
				Code:     block,
			}
			if err := w.Write(record); err != nil {
				return total, err
			}
			units = append(units, &storage.Unit{
				Stream:    storage.StreamCodeBlocks,
				GlobalID:  record.GlobalID,
				Path:      record.Path,
				Lang:      string(lang),
				Content:   block,
				WordCount: types.CountWords(block),
			})
			total++
		}
	}

	if err := w.Close(); err != nil {
		return total, err
	}
	return total, r.storeUnits(ctx, units)
}

// trimBlocks trims each block and drops empties. The whole blob serves as
// fallback when nothing survives, so no file loses its content entirely.
func trimBlocks(blocks []string, whole string) []string {
	var out []string
	for _, b := range blocks {
		if t := strings.TrimSpace(b); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{whole}
	}
	return out
}

// emitCommentLines writes one record per non-empty comment line.
func (r *Runner) emitCommentLines(ctx context.Context, recs []*types.CommentRecord) (int, error) {
	w, err := emitter.NewLineWriter(r.outPath(FileCommentLines))
	if err != nil {
		return 0, err
	}
	defer func() { _ = w.Close() }()

	var assigner ids.Assigner
	var units []*storage.Unit
	total := 0

	for _, rec := range recs {
		assigner.NextFile()
		for _, line := range chunker.CommentLines(rec.Comments) {
			record := &types.CommentLineRecord{
				GlobalID: assigner.NextUnit(),
				Path:     rec.Path,
				Comments: line,
			}
			if err := w.Write(record); err != nil {
				return total, err
			}
			units = append(units, &storage.Unit{
				Stream:    storage.StreamCommentLines,
				GlobalID:  record.GlobalID,
				Path:      record.Path,
				Content:   line,
				WordCount: types.CountFields(line),
			})
			total++
		}
	}

	if err := w.Close(); err != nil {
		return total, err
	}
	return total, r.storeUnits(ctx, units)
}

// emitMarkdownChunks sentence-chunks markdown files from the text content
// stream into a JSON array. Non-markdown text records still consume a file
// index, matching the stream position contract.
func (r *Runner) emitMarkdownChunks(ctx context.Context, recs []*types.ContentRecord) (int, error) {
	var assigner ids.Assigner
	var units []*storage.Unit
	records := make([]*types.TextChunkRecord, 0)

	for _, rec := range recs {
		assigner.NextFile()
		if !strings.HasSuffix(strings.ToLower(rec.Path), ".md") {
			continue
		}
		for _, chunk := range chunker.Chunk(rec.Content, r.cfg.MaxWords) {
			record := &types.TextChunkRecord{
				GlobalID: assigner.NextUnit(),
				Path:     rec.Path,
				Text:     chunk,
			}
			records = append(records, record)
			units = append(units, &storage.Unit{
				Stream:    storage.StreamMarkdownChunks,
				GlobalID:  record.GlobalID,
				Path:      record.Path,
				Content:   chunk,
				WordCount: types.CountFields(chunk),
			})
		}
	}

	if err := emitter.WriteArray(r.outPath(FileMarkdownChunks), records); err != nil {
		return 0, err
	}
	return len(records), r.storeUnits(ctx, units)
}

// emitCommentChunks sentence-chunks comment prose into a JSON array.
func (r *Runner) emitCommentChunks(ctx context.Context, recs []*types.CommentRecord) (int, error) {
	var assigner ids.Assigner
	var units []*storage.Unit
	records := make([]*types.CommentChunkRecord, 0)

	for _, rec := range recs {
		assigner.NextFile()
		for _, chunk := range chunker.Chunk(rec.Comments, r.cfg.MaxWords) {
			record := &types.CommentChunkRecord{
				GlobalID: assigner.NextUnit(),
				Path:     rec.Path,
				Comments: chunk,
			}
			records = append(records, record)
			units = append(units, &storage.Unit{
				Stream:    storage.StreamCommentChunks,
				GlobalID:  record.GlobalID,
				Path:      record.Path,
				Content:   chunk,
				WordCount: types.CountFields(chunk),
			})
		}
	}

	if err := emitter.WriteArray(r.outPath(FileCommentChunks), records); err != nil {
		return 0, err
	}
	return len(records), r.storeUnits(ctx, units)
}

// storeUnits records emitted units when a store is configured.
func (r *Runner) storeUnits(ctx context.Context, units []*storage.Unit) error {
	if r.store == nil || len(units) == 0 {
		return nil
	}
	for _, u := range units {
		u.RunID = r.runID
	}
	return r.store.InsertUnits(ctx, units)
}

func (r *Runner) outPath(name string) string {
	return filepath.Join(r.cfg.OutputDir, name)
}

// writeStream emits a slice of records as one JSONL file.
func writeStream[T any](path string, recs []T) error {
	w, err := emitter.NewLineWriter(path)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
