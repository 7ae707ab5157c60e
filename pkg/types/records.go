package types

// FileRecord is one line of a file-list stream (text_files.jsonl and
// friends).
type FileRecord struct {
	Type FileKind `json:"type"`
	Path string   `json:"path"`
}

// ContentRecord holds the verbatim content of a text or other file.
type ContentRecord struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CodeRecord holds the code-only lines of a code file, block comments
// stripped and line comments removed, joined with newlines and trimmed.
type CodeRecord struct {
	Path string `json:"path"`
	Code string `json:"code"`
}

// CommentRecord holds the comment-only lines of a code file. Code and
// comment lines are disjoint subsets of the original line set.
type CommentRecord struct {
	Path     string `json:"path"`
	Comments string `json:"comments"`
}

// CodeBlockRecord is one structural block of a code file. Concatenating a
// file's blocks in emission order reconstructs the code content modulo
// per-block trimming.
type CodeBlockRecord struct {
	GlobalID string `json:"global_id"`
	Path     string `json:"path"`
	Lang     Lang   `json:"lang"`
	Code     string `json:"code"`
}

// CommentLineRecord is one non-empty line of extracted comment text,
// unsplit by sentence logic.
type CommentLineRecord struct {
	GlobalID string `json:"global_id"`
	Path     string `json:"path"`
	Comments string `json:"comments"`
}

// TextChunkRecord is one word-budgeted chunk of markdown prose.
type TextChunkRecord struct {
	GlobalID string `json:"global_id"`
	Path     string `json:"path"`
	Text     string `json:"text"`
}

// CommentChunkRecord is one word-budgeted chunk of comment prose.
type CommentChunkRecord struct {
	GlobalID string `json:"global_id"`
	Path     string `json:"path"`
	Comments string `json:"comments"`
}
