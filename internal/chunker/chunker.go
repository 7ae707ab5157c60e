// Package chunker decomposes prose (markdown, comment text) into sentences
// and greedily packs them into word-budgeted chunks.
package chunker

import (
	"strings"

	"repochunk/pkg/types"
)

// DefaultMaxWords is the default word budget per chunk.
const DefaultMaxWords = 512

// sentenceEnd holds the terminal punctuation marks for Latin and CJK text.
var sentenceEnd = map[rune]bool{
	'。': true,
	'！': true,
	'？': true,
	'!': true,
	'?': true,
	'.': true,
}

// SplitSentences splits text on terminal punctuation, keeping each mark
// attached to the preceding span. An unpaired trailing fragment becomes its
// own sentence. Sentences are trimmed; empty ones are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var buf strings.Builder

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			sentences = append(sentences, s)
		}
		buf.Reset()
	}

	for _, r := range text {
		buf.WriteRune(r)
		if sentenceEnd[r] {
			flush()
		}
	}
	flush()

	return sentences
}

// PackSentences greedily packs sentences into chunks of at most maxWords
// whitespace-separated words. A sentence that would push a non-empty chunk
// over the budget starts a new chunk instead. A single sentence longer than
// the budget is emitted alone, over budget; content is never truncated.
func PackSentences(sentences []string, maxWords int) []string {
	var chunks []string
	var current []string
	count := 0

	for _, s := range sentences {
		words := types.CountFields(s)
		if count+words > maxWords && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, count = nil, 0
		}
		current = append(current, s)
		count += words
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// Chunk splits text into sentences and packs them under the word budget.
func Chunk(text string, maxWords int) []string {
	return PackSentences(SplitSentences(text), maxWords)
}

// CommentLines returns the non-empty lines of extracted comment text,
// unsplit by sentence logic, in source order.
func CommentLines(comments string) []string {
	var lines []string
	for _, line := range strings.Split(comments, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
