package splitter

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// pythonSplitter parses the blob with the Tree-sitter Python grammar and
// emits each top-level statement's source line range as one block. Parse
// failure falls back to the whole blob as a single block.
//
// Blank lines between top-level statements are not captured by any block;
// this gap is an accepted property of statement-range splitting.
type pythonSplitter struct{}

func (pythonSplitter) Split(code string) []string {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(code))
	if err != nil {
		return []string{code}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return []string{code}
	}

	lines := strings.Split(code, "\n")
	var blocks []string
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() == "comment" {
			continue
		}
		start := int(node.StartPoint().Row)
		end := int(node.EndPoint().Row)
		if end >= len(lines) {
			end = len(lines) - 1
		}
		blocks = append(blocks, strings.Join(lines[start:end+1], "\n"))
	}

	if len(blocks) == 0 {
		return []string{code}
	}
	return blocks
}
