package splitter

import "strings"

// rubyOpeners start a nested block terminated by a bare "end".
var rubyOpeners = []string{"class", "module", "def"}

// rubySplitter tracks a nesting counter over class/module/def openers and
// bare end tokens; a block closes when the counter returns to zero.
type rubySplitter struct{}

func (rubySplitter) Split(code string) []string {
	lines := strings.Split(code, "\n")
	var blocks []string
	var buffer []string
	depth := 0

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		buffer = append(buffer, line)

		switch {
		case startsWithKeyword(stripped, rubyOpeners):
			depth++
		case stripped == "end" && depth > 0:
			depth--
			if depth == 0 {
				if block := strings.TrimSpace(strings.Join(buffer, "\n")); block != "" {
					blocks = append(blocks, block)
				}
				buffer = nil
			}
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
