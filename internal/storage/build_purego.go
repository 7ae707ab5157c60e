//go:build !cgosqlite
// +build !cgosqlite

package storage

// This file is compiled by default and uses a pure Go SQLite
// implementation, so no C compiler is required.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes how the binary was built
	BuildMode = "purego"
)
