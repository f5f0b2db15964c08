package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderedRowsWithoutRowNumber(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{{Name: "name"}},
		Rows:    []Row{{"name": "z"}, {"name": "a"}},
	}

	// Provider order is assumed meaningful when no RowNumber is declared.
	rows := rs.OrderedRows()
	assert.Equal(t, "z", rows[0]["name"])
	assert.Equal(t, "a", rows[1]["name"])
}

func TestOrderedRowsStableOnTies(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{{Name: RowNumberColumn}, {Name: "name"}},
		Rows: []Row{
			{RowNumberColumn: int64(1), "name": "first"},
			{RowNumberColumn: int64(1), "name": "second"},
		},
	}

	rows := rs.OrderedRows()
	assert.Equal(t, "first", rows[0]["name"])
	assert.Equal(t, "second", rows[1]["name"])
}

func TestOrderedRowsDoesNotMutateInput(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{{Name: RowNumberColumn}},
		Rows:    []Row{{RowNumberColumn: int64(2)}, {RowNumberColumn: int64(1)}},
	}

	_ = rs.OrderedRows()
	assert.Equal(t, int64(2), rs.Rows[0][RowNumberColumn])
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		out     string
		present bool
	}{
		{"nil", nil, "", false},
		{"string", "abc", "abc", true},
		{"bytes", []byte("abc"), "abc", true},
		{"bool", true, "true", true},
		{"int64", int64(42), "42", true},
		{"float", 1.5, "1.5", true},
		{"time", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), "2026-03-01 12:00:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, present := FormatValue(tc.in)
			assert.Equal(t, tc.out, out)
			assert.Equal(t, tc.present, present)
		})
	}
}
