package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLang(t *testing.T) {
	tests := []struct {
		path string
		want Lang
	}{
		{"main.go", LangGo},
		{"src/App.JAVA", LangJava},
		{"lib/util.js", LangJS},
		{"lib/util.ts", LangTS},
		{"script.py", LangPython},
		{"index.php", LangPHP},
		{"app.rb", LangRuby},
		{"README.md", LangUnknown},
		{"Makefile", LangUnknown},
		{"archive.tar.gz", LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLang(tt.path))
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("{} () ;;"))
	assert.Equal(t, 1, CountWords("hello"))
	// Underscores join a run; punctuation separates runs.
	assert.Equal(t, 4, CountWords("func main() { return snake_case }"))
	assert.Equal(t, 3, CountWords("a_b c-d"))
}

func TestCountFields(t *testing.T) {
	assert.Equal(t, 0, CountFields("   "))
	assert.Equal(t, 2, CountFields("hello world."))
	assert.Equal(t, 3, CountFields("one\ttwo\nthree"))
}
