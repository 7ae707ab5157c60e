// Package splitter decomposes a code blob into an ordered list of
// structural blocks along language-specific syntactic boundaries.
//
// Each language variant implements the Splitter interface and is selected
// from a dispatch table by language tag; unknown languages fall back to the
// identity splitter, which returns the whole blob as one block. Splitting
// is best-effort: blocks are not validated for syntactic completeness.
package splitter

import "repochunk/pkg/types"

// Splitter turns a code blob into an ordered list of blocks. Every
// implementation returns at least one block and preserves source order.
type Splitter interface {
	Split(code string) []string
}

var registry = map[types.Lang]Splitter{
	types.LangPython: pythonSplitter{},
	types.LangJava:   braceSplitter{},
	types.LangJS:     braceSplitter{skipLineComments: true},
	types.LangTS:     braceSplitter{skipLineComments: true},
	types.LangGo:     braceSplitter{resetKeywords: goDeclKeywords},
	types.LangRuby:   rubySplitter{},
}

// ForLang returns the splitter registered for lang, or the identity
// splitter when the language has no structural variant.
func ForLang(lang types.Lang) Splitter {
	if s, ok := registry[lang]; ok {
		return s
	}
	return identitySplitter{}
}

// identitySplitter emits the blob unchanged as a single block.
type identitySplitter struct{}

func (identitySplitter) Split(code string) []string {
	return []string{code}
}
