// Package extractor reads file content and, for code files, separates code
// lines from comment lines. Block comments are stripped before the
// line-prefix test so a comment body is never mis-seen as code.
package extractor

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"repochunk/pkg/types"
)

// blockComment matches /* ... */ spans, non-greedy, across lines.
var blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

// DefaultMarkers are the line-comment prefixes recognized by default.
var DefaultMarkers = []string{"#", "//"}

// Extractor reads repository files. Per-file read failures are recorded and
// the file is skipped; they never abort the run.
type Extractor struct {
	markers []string
	workers int
}

// New creates an Extractor. Zero workers means one per CPU.
func New(markers []string, workers int) *Extractor {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Extractor{markers: markers, workers: workers}
}

// SplitCodeComments partitions content into a code-only and a comment-only
// string. Every line lands in exactly one of the two, in source order; each
// side is joined with newlines and trimmed.
func (e *Extractor) SplitCodeComments(content string) (code, comments string) {
	content = blockComment.ReplaceAllString(content, "")

	var codeLines, commentLines []string
	for _, line := range strings.Split(content, "\n") {
		if e.isCommentLine(line) {
			commentLines = append(commentLines, line)
		} else {
			codeLines = append(codeLines, line)
		}
	}

	return strings.TrimSpace(strings.Join(codeLines, "\n")),
		strings.TrimSpace(strings.Join(commentLines, "\n"))
}

func (e *Extractor) isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, m := range e.markers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

// ExtractCode reads each code file and splits it into code and comment
// parts. Results keep the input order regardless of worker scheduling;
// unreadable files yield a nil slot and an error message.
func (e *Extractor) ExtractCode(ctx context.Context, paths []string) ([]*types.CodeRecord, []*types.CommentRecord, []string) {
	codeSlots := make([]*types.CodeRecord, len(paths))
	commentSlots := make([]*types.CommentRecord, len(paths))
	errMsgs := make([]string, 0)

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, path := range paths {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", path, err))
				mu.Unlock()
				return nil
			}
			code, comments := e.SplitCodeComments(string(content))
			codeSlots[i] = &types.CodeRecord{Path: path, Code: code}
			commentSlots[i] = &types.CommentRecord{Path: path, Comments: comments}
			return nil
		})
	}
	_ = g.Wait() // workers only report per-file failures via errMsgs

	var codeRecs []*types.CodeRecord
	var commentRecs []*types.CommentRecord
	for i := range paths {
		if codeSlots[i] != nil && codeSlots[i].Code != "" {
			codeRecs = append(codeRecs, codeSlots[i])
		}
		if commentSlots[i] != nil && commentSlots[i].Comments != "" {
			commentRecs = append(commentRecs, commentSlots[i])
		}
	}
	return codeRecs, commentRecs, errMsgs
}

// ReadContents reads text/other files verbatim, preserving input order.
// Unreadable files are skipped and reported in the error list.
func (e *Extractor) ReadContents(ctx context.Context, paths []string) ([]*types.ContentRecord, []string) {
	slots := make([]*types.ContentRecord, len(paths))
	errMsgs := make([]string, 0)

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, path := range paths {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", path, err))
				mu.Unlock()
				return nil
			}
			slots[i] = &types.ContentRecord{Path: path, Content: string(content)}
			return nil
		})
	}
	_ = g.Wait()

	var recs []*types.ContentRecord
	for _, s := range slots {
		if s != nil {
			recs = append(recs, s)
		}
	}
	return recs, errMsgs
}
