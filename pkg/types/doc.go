// Package types provides shared type definitions for the repochunk pipeline.
//
// This package defines the file kinds and language tags used for dispatch,
// the JSON record schemas written to the output directory, and the word
// counting helpers that budget checks rely on.
//
// Every record is created by exactly one pipeline stage and never mutated
// afterwards; emission is append-only.
package types
