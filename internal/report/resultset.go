package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// RowNumberColumn is the well-known ordering column. When a provider query
// includes it, renderers emit rows in ascending RowNumber order instead of
// trusting the arrival order of the result set.
const RowNumberColumn = "RowNumber"

// ColumnType is the declared semantic type of a result set column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeNumber
	TypeBool
	TypeDate
)

// Column describes one column of a ResultSet. Column order is significant:
// it determines CSV field order.
type Column struct {
	Name string
	Type ColumnType
}

// Row maps column names to nullable scalar values. A nil value is a SQL NULL.
type Row map[string]any

// ResultSet is an ordered-column, ordered-row tabular value produced by a
// metadata provider for one report section. It must not be mutated after
// being handed to a renderer.
type ResultSet struct {
	Columns []Column
	Rows    []Row
}

// HasColumn reports whether the result set schema declares the named column.
func (rs *ResultSet) HasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// OrderedRows returns the rows in their rendering order: ascending by the
// RowNumber column when the schema declares one, otherwise exactly as the
// provider returned them. The sort is stable so ties keep provider order.
func (rs *ResultSet) OrderedRows() []Row {
	if !rs.HasColumn(RowNumberColumn) {
		return rs.Rows
	}
	ordered := make([]Row, len(rs.Rows))
	copy(ordered, rs.Rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rowNumber(ordered[i]) < rowNumber(ordered[j])
	})
	return ordered
}

func rowNumber(r Row) int64 {
	n, _ := toInt64(r[RowNumberColumn])
	return n
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// FormatValue converts a scalar row value to its report text. The boolean
// result is false for SQL NULL, in which case the text is empty.
func FormatValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []byte:
		return string(val), true
	case bool:
		return strconv.FormatBool(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case time.Time:
		return val.UTC().Format("2006-01-02 15:04:05"), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}
