// Package emitter writes pipeline records to the output directory as
// line-delimited JSON streams or indented JSON arrays. Writes are
// append-only, one record per unit, in emission order.
package emitter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// LineWriter appends one JSON record per line to a stream file.
type LineWriter struct {
	f   *os.File
	buf *bufio.Writer
	enc *json.Encoder
}

// NewLineWriter creates (truncating) the stream file at path.
func NewLineWriter(path string) (*LineWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	buf := bufio.NewWriter(f)
	enc := json.NewEncoder(buf)
	// Keep non-ASCII and <>& literal so output is stable and readable.
	enc.SetEscapeHTML(false)
	return &LineWriter{f: f, buf: buf, enc: enc}, nil
}

// Write appends one record. The encoder terminates each record with a
// newline.
func (w *LineWriter) Write(record any) error {
	return w.enc.Encode(record)
}

// Close flushes and closes the stream file.
func (w *LineWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}

// WriteArray writes records as a single indented JSON array file.
func WriteArray(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
