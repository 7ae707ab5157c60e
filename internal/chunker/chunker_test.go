package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentencesLatin(t *testing.T) {
	sentences := SplitSentences("First one. Second one! Third one?")

	require.Len(t, sentences, 3)
	assert.Equal(t, "First one.", sentences[0])
	assert.Equal(t, "Second one!", sentences[1])
	assert.Equal(t, "Third one?", sentences[2])
}

func TestSplitSentencesCJK(t *testing.T) {
	sentences := SplitSentences("这是第一句。这是第二句！最后一句？")

	require.Len(t, sentences, 3)
	assert.Equal(t, "这是第一句。", sentences[0])
	assert.Equal(t, "这是第二句！", sentences[1])
	assert.Equal(t, "最后一句？", sentences[2])
}

func TestSplitSentencesTrailingFragment(t *testing.T) {
	sentences := SplitSentences("Complete sentence. dangling fragment")

	require.Len(t, sentences, 2)
	assert.Equal(t, "dangling fragment", sentences[1])
}

func TestSplitSentencesEmpty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("   \n\t  "))
}

// sentence returns a sentence with exactly n whitespace-separated words,
// the last one carrying the terminal period.
func sentence(n int) string {
	return strings.Repeat("w ", n-1) + "w."
}

func TestPackSentencesBudget(t *testing.T) {
	sentences := []string{sentence(200), sentence(200), sentence(200)}

	chunks := PackSentences(sentences, DefaultMaxWords)

	// 200+200 fits in 512, the third sentence would overflow.
	require.Len(t, chunks, 2)
	assert.Equal(t, sentences[0]+" "+sentences[1], chunks[0])
	assert.Equal(t, sentences[2], chunks[1])
}

func TestPackSentencesExactFit(t *testing.T) {
	chunks := PackSentences([]string{sentence(256), sentence(256)}, 512)

	// 256+256 == 512 does not exceed the budget.
	require.Len(t, chunks, 1)
}

func TestPackSentencesOversizedSentence(t *testing.T) {
	huge := sentence(600)
	chunks := PackSentences([]string{sentence(100), huge, sentence(100)}, 512)

	require.Len(t, chunks, 3)
	assert.Equal(t, huge, chunks[1])
}

func TestPackSentencesEmpty(t *testing.T) {
	assert.Empty(t, PackSentences(nil, 512))
}

func TestChunkRoundTrip(t *testing.T) {
	text := "One two three. Four five! Six seven eight nine?"

	chunks := Chunk(text, 4)

	require.Len(t, chunks, 3)
	assert.Equal(t, "One two three.", chunks[0])
	assert.Equal(t, "Four five!", chunks[1])
	assert.Equal(t, "Six seven eight nine?", chunks[2])
}

func TestCommentLines(t *testing.T) {
	comments := "# first note\n\n   \n// second note\n"

	lines := CommentLines(comments)

	require.Len(t, lines, 2)
	assert.Equal(t, "# first note", lines[0])
	assert.Equal(t, "// second note", lines[1])
}

func TestCommentLinesEmpty(t *testing.T) {
	assert.Empty(t, CommentLines(""))
	assert.Empty(t, CommentLines("\n\n\n"))
}
