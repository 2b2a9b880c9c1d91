package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Writer emits newline-delimited JSON records to a file. Writes are
// append-only: prior lines are never rewritten or reordered, so a crash
// mid-run leaves a truncated-but-valid-prefix NDJSON file. Non-ASCII
// characters are preserved unescaped.
type Writer struct {
	file  *os.File
	buf   *bufio.Writer
	enc   *json.Encoder
	lines int
}

// NewWriter creates (or truncates) the NDJSON file at path.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	buf := bufio.NewWriter(file)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	return &Writer{file: file, buf: buf, enc: enc}, nil
}

// Write appends one record as a single JSON line.
func (w *Writer) Write(v any) error {
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	w.lines++
	return nil
}

// Lines returns the number of records written.
func (w *Writer) Lines() int {
	return w.lines
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush: %w", err)
	}
	return w.file.Close()
}

// ReadAll decodes every JSON value from an NDJSON stream. It scans values
// sequentially rather than assuming one object per line, so it tolerates
// lines carrying more than one concatenated JSON value.
func ReadAll(r io.Reader) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bufio.NewReader(r))

	var values []json.RawMessage
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return values, nil
			}
			return values, fmt.Errorf("decode value %d: %w", len(values)+1, err)
		}
		values = append(values, raw)
	}
}
