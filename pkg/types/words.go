package types

import (
	"regexp"
	"strings"
)

// wordRun matches a maximal run of alphanumeric/underscore characters.
var wordRun = regexp.MustCompile(`\w+`)

// CountWords counts word tokens in code the way the budget check defines
// them: maximal alphanumeric/underscore runs, not whitespace fields.
func CountWords(s string) int {
	return len(wordRun.FindAllStringIndex(s, -1))
}

// CountFields counts whitespace-separated fields. Sentence packing budgets
// use this cheaper definition.
func CountFields(s string) int {
	return len(strings.Fields(s))
}
