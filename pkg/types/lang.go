package types

import (
	"path/filepath"
	"strings"
)

// FileKind classifies a discovered file by content kind.
type FileKind string

const (
	KindText  FileKind = "text"
	KindCode  FileKind = "code"
	KindOther FileKind = "other"
)

// Lang identifies the source language of a code file, derived from its
// extension. LangUnknown files are never structurally split.
type Lang string

const (
	LangPython  Lang = "python"
	LangJava    Lang = "java"
	LangJS      Lang = "js"
	LangTS      Lang = "ts"
	LangGo      Lang = "go"
	LangPHP     Lang = "php"
	LangRuby    Lang = "ruby"
	LangUnknown Lang = "unknown"
)

var langByExt = map[string]Lang{
	".py":   LangPython,
	".java": LangJava,
	".js":   LangJS,
	".ts":   LangTS,
	".go":   LangGo,
	".php":  LangPHP,
	".rb":   LangRuby,
}

// DetectLang maps a file path to its language tag by extension.
func DetectLang(path string) Lang {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := langByExt[ext]; ok {
		return lang
	}
	return LangUnknown
}
