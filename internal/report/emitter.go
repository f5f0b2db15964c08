package report

import "strings"

// ChunkSize is the maximum number of characters emitted as a single line
// record. Longer text is split into successive fixed-size chunks, matching
// the 4000-character wire limit of the emitter's original host.
const ChunkSize = 4000

// maxParams is the highest positional token recognized in a template.
const maxParams = 8

// Emitter appends lines of report text to a Document, performing positional
// token substitution and chunking of very long lines. It performs no other
// text transformation: no trimming, no escaping, no case changes.
type Emitter struct {
	doc *Document
}

// NewEmitter creates an emitter that appends to doc.
func NewEmitter(doc *Document) *Emitter {
	return &Emitter{doc: doc}
}

// Emit appends template to the document, replacing positional tokens
// {%1}..{%8} with the corresponding params entries. A token with no supplied
// parameter is left verbatim in the output, never stripped. Emitting an
// empty string still produces exactly one empty line.
func (e *Emitter) Emit(template string, params ...string) {
	text := substitute(template, params)
	if text == "" {
		// An empty emission is still exactly one empty line.
		e.doc.Append("")
		return
	}
	for len(text) > 0 {
		chunk, rest := splitChunk(text, ChunkSize)
		if rest == "" {
			e.doc.Append(chunk)
		} else {
			e.doc.appendContinued(chunk)
		}
		text = rest
	}
}

// Blank appends one empty line.
func (e *Emitter) Blank() {
	e.Emit("")
}

// substitute replaces {%N} tokens in a single left-to-right pass so that
// replacement text can never itself be re-substituted; the result is
// therefore independent of any substitution order.
func substitute(template string, params []string) string {
	if template == "" {
		return ""
	}
	var b strings.Builder
	i := 0
	for i < len(template) {
		if n, ok := tokenAt(template, i); ok {
			if n <= len(params) {
				b.WriteString(params[n-1])
			} else {
				b.WriteString(template[i : i+4])
			}
			i += 4
			continue
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

// tokenAt reports whether template[i:] starts with a {%N} token for
// N in 1..maxParams and returns N.
func tokenAt(template string, i int) (int, bool) {
	if i+4 > len(template) {
		return 0, false
	}
	if template[i] != '{' || template[i+1] != '%' || template[i+3] != '}' {
		return 0, false
	}
	d := template[i+2]
	if d < '1' || d > '0'+maxParams {
		return 0, false
	}
	return int(d - '0'), true
}

// splitChunk splits text into a head of at most limit characters plus the
// remainder. The split is rune-aligned and byte-faithful: concatenating head
// and rest reproduces text exactly, embedded whitespace included.
func splitChunk(text string, limit int) (string, string) {
	count := 0
	for i := range text {
		if count == limit {
			return text[:i], text[i:]
		}
		count++
	}
	return text, ""
}
