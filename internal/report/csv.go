package report

import "strings"

// NoResultsNotice is emitted in place of a fenced block when a section's
// result set does not exist at all (distinct from existing with zero rows).
const NoResultsNotice = "> No results available for this section."

// RenderCSV emits rs as a fenced csv block through e. A nil result set means
// the provider produced nothing for the section; the renderer then emits the
// fallback notice plus a blank separator and never an empty fence. Output is
// byte-deterministic for a given result set.
func RenderCSV(e *Emitter, rs *ResultSet) {
	if rs == nil {
		e.Emit(NoResultsNotice)
		e.Blank()
		return
	}

	e.Emit("```csv")

	header := make([]string, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = csvField(col.Name, true)
	}
	e.Emit(strings.Join(header, ","))

	for _, row := range rs.OrderedRows() {
		fields := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			text, present := FormatValue(row[col.Name])
			fields[i] = csvField(text, present)
		}
		e.Emit(strings.Join(fields, ","))
	}

	e.Emit("```")
}

// csvField encodes one field under the always-quote policy: the whole value
// is wrapped in double quotes regardless of content, embedded double quotes
// are doubled, and embedded CR/LF characters are removed entirely so a field
// can never span lines. A null value becomes an empty quoted field.
func csvField(text string, present bool) string {
	if !present {
		return `""`
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range text {
		switch r {
		case '\r', '\n':
			// dropped, not replaced
		case '"':
			b.WriteString(`""`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
