package provider

import (
	"database/sql"
	"strings"

	"github.com/pgscout/pgscout/internal/report"
)

// scanResultSet materializes all rows into a report.ResultSet, preserving
// the query's column order and arrival row order. []byte values are
// normalized to string; NULLs stay nil.
func scanResultSet(rows *sql.Rows) (*report.ResultSet, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	columns := make([]report.Column, len(names))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			columns[i] = report.Column{Name: names[i], Type: semanticType(ct.DatabaseTypeName())}
		}
	} else {
		for i, name := range names {
			columns[i] = report.Column{Name: name}
		}
	}

	rs := &report.ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(names))
		valuePtrs := make([]any, len(names))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		record := make(report.Row, len(names))
		for i, name := range names {
			if b, ok := values[i].([]byte); ok {
				record[name] = string(b)
			} else {
				record[name] = values[i]
			}
		}
		rs.Rows = append(rs.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// semanticType maps a driver-reported database type to the report's declared
// column types.
func semanticType(dbType string) report.ColumnType {
	switch strings.ToUpper(dbType) {
	case "INT", "INT2", "INT4", "INT8", "INTEGER", "BIGINT", "SMALLINT",
		"NUMERIC", "DECIMAL", "FLOAT4", "FLOAT8", "REAL", "DOUBLE", "OID", "XID":
		return report.TypeNumber
	case "BOOL", "BOOLEAN":
		return report.TypeBool
	case "DATE", "TIME", "TIMETZ", "TIMESTAMP", "TIMESTAMPTZ", "DATETIME", "INTERVAL":
		return report.TypeDate
	default:
		return report.TypeText
	}
}
