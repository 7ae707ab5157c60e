package splitter

import "strings"

// goDeclKeywords open a new top-level declaration in Go source. A line
// beginning with one of these resets the depth counter so each declaration
// is treated independently.
var goDeclKeywords = []string{"func", "type", "var", "const"}

// braceSplitter scans line by line with a brace-depth counter and closes a
// block whenever the depth returns to zero after the block has opened a
// brace. Remaining buffered lines are flushed as a final block.
//
// Brace balance across the whole file is not validated; behavior on
// unbalanced input is an accepted approximation.
type braceSplitter struct {
	// skipLineComments leaves full-line // comments out of the depth
	// count (but still buffers them) so commented-out braces cannot
	// corrupt the depth. Used for JS/TS.
	skipLineComments bool

	// resetKeywords, when set, reset the depth to zero on any line that
	// begins with one of them (after leading whitespace).
	resetKeywords []string
}

func (s braceSplitter) Split(code string) []string {
	lines := strings.Split(code, "\n")
	var blocks []string
	var buffer []string
	depth := 0
	opened := false

	for _, line := range lines {
		buffer = append(buffer, line)

		trimmed := strings.TrimSpace(line)
		if s.skipLineComments && strings.HasPrefix(trimmed, "//") {
			continue
		}
		if len(s.resetKeywords) > 0 && startsWithKeyword(trimmed, s.resetKeywords) {
			depth = 0
		}

		if strings.Contains(line, "{") {
			opened = true
		}
		depth += strings.Count(line, "{")
		depth -= strings.Count(line, "}")

		// A block closes when its opening brace has been balanced out.
		if depth == 0 && opened {
			if block := strings.TrimSpace(strings.Join(buffer, "\n")); block != "" {
				blocks = append(blocks, block)
			}
			buffer = nil
			opened = false
		}
	}

	if len(buffer) > 0 {
		if rest := strings.TrimSpace(strings.Join(buffer, "\n")); rest != "" {
			blocks = append(blocks, rest)
		}
	}

	if len(blocks) == 0 {
		return []string{code}
	}
	return blocks
}

// startsWithKeyword reports whether line begins with one of the keywords
// followed by a non-word character or end of line.
func startsWithKeyword(line string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.HasPrefix(line, kw) {
			continue
		}
		rest := line[len(kw):]
		if rest == "" || !isWordChar(rest[0]) {
			return true
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
