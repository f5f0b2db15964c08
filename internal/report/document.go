package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// record is one appended emission. A continued record is the non-final chunk
// of a long emission: no terminator is written after it, so chunking never
// inserts characters into the flushed document.
type record struct {
	text      string
	continued bool
}

// Document is the append-only line accumulator for one report run. The
// section driver owns it for the duration of the run; it is flushed to the
// output sink once at the end.
type Document struct {
	records []record
}

// NewDocument creates an empty report document.
func NewDocument() *Document {
	return &Document{}
}

// Append adds one complete line record to the document.
func (d *Document) Append(line string) {
	d.records = append(d.records, record{text: line})
}

// appendContinued adds a chunk record whose text continues in the next
// record. Only the emitter's chunking path uses this.
func (d *Document) appendContinued(chunk string) {
	d.records = append(d.records, record{text: chunk, continued: true})
}

// Len returns the number of records appended so far.
func (d *Document) Len() int {
	return len(d.records)
}

// Lines returns a copy of the appended record texts.
func (d *Document) Lines() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.text
	}
	return out
}

// String returns the full document. Each emission is followed by exactly one
// newline; chunk boundaries inside an emission contribute nothing.
func (d *Document) String() string {
	var b strings.Builder
	for _, r := range d.records {
		b.WriteString(r.text)
		if !r.continued {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteTo writes the full document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Save writes the document to dir/name, creating dir if needed, and returns
// the written path. Callers fall back to a console sink when Save fails so
// the report content is never silently dropped.
func (d *Document) Save(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(d.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return path, nil
}
