// Package classifier walks a repository tree and partitions its regular
// files into text, code, and other lists by extension.
package classifier

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Result holds the three path lists in filesystem traversal order. That
// order defines the file indices assigned downstream.
type Result struct {
	Text  []string
	Code  []string
	Other []string
}

// Classify walks root (nested directories and hidden files included) and
// buckets every regular file by its lowercased extension. Traversal errors
// are fatal for the run.
func Classify(root string, textExts, codeExts map[string]bool) (*Result, error) {
	res := &Result{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case textExts[ext]:
			res.Text = append(res.Text, path)
		case codeExts[ext]:
			res.Code = append(res.Code, path)
		default:
			res.Other = append(res.Other, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
