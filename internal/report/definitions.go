package report

const (
	// NoRowsNotice is emitted when a definition result set exists but has
	// zero rows.
	NoRowsNotice = "> No rows."

	// RedactedBody replaces a null or empty definition body when redaction
	// is on, so a fence never closes over a literal empty string.
	RedactedBody = "-- [redacted]"

	// RedactionMarker replaces free-text values (comments, query text,
	// definition bodies) at the provider layer when safe mode is on.
	RedactionMarker = "[redacted]"
)

// DefinitionColumns names the recognized fields of a definition row. Any of
// the label columns may be absent from the result set; only Body is required.
type DefinitionColumns struct {
	Type   string
	Schema string
	Name   string
	Body   string
}

// DefinitionOptions configures one RenderDefinitions call.
type DefinitionOptions struct {
	Columns DefinitionColumns

	// Redact substitutes RedactedBody for a null or empty body. It does not
	// blank non-empty bodies; callers needing full redaction replace the
	// body before the result set reaches this renderer.
	Redact bool

	// Section identifies the result set in schema-mismatch diagnostics.
	Section string
}

// RenderDefinitions emits one fenced sql block per row of rs, each with an
// optional heading naming the object. A nil result set is a silent no-op,
// unlike RenderCSV's fallback notice; the asymmetry is deliberate and relied
// on by sections that are probed away entirely.
func RenderDefinitions(e *Emitter, rs *ResultSet, opts DefinitionOptions) {
	if rs == nil {
		return
	}
	if len(rs.Rows) == 0 {
		e.Emit(NoRowsNotice)
		e.Blank()
		return
	}
	if !rs.HasColumn(opts.Columns.Body) {
		e.Emit("> Column {%1} not found in result set {%2}; definitions skipped.",
			quoteName(opts.Columns.Body), quoteName(opts.Section))
		return
	}

	for _, row := range rs.OrderedRows() {
		if title := definitionTitle(row, opts.Columns); title != "" {
			e.Emit("### {%1}", title)
		}

		body, present := FormatValue(row[opts.Columns.Body])
		if opts.Redact && (!present || body == "") {
			body = RedactedBody
		}
		body = trimTrailingBreaks(body)

		e.Emit("```sql")
		e.Emit(body)
		e.Emit("```")
		e.Blank()
	}
}

// definitionTitle composes "<type> [schema].[name]" from whichever label
// fields the row carries. All three absent means no title line at all.
func definitionTitle(row Row, cols DefinitionColumns) string {
	typeLabel := fieldText(row, cols.Type)
	schema := fieldText(row, cols.Schema)
	name := fieldText(row, cols.Name)

	var qualified string
	switch {
	case schema != "" && name != "":
		qualified = "[" + schema + "].[" + name + "]"
	case name != "":
		qualified = "[" + name + "]"
	default:
		qualified = schema
	}

	if typeLabel != "" && qualified != "" {
		return typeLabel + " " + qualified
	}
	if typeLabel != "" {
		return typeLabel
	}
	return qualified
}

func fieldText(row Row, col string) string {
	if col == "" {
		return ""
	}
	text, present := FormatValue(row[col])
	if !present {
		return ""
	}
	return text
}

// trimTrailingBreaks strips trailing CR/LF characters one at a time so the
// closing fence is never preceded by blank lines.
func trimTrailingBreaks(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		if last != '\r' && last != '\n' {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

func quoteName(s string) string {
	return `"` + s + `"`
}
