package provider

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgscout/pgscout/internal/report"
)

func TestScanResultSetPreservesColumnOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"b", "a", "c"}).AddRow("1", "2", "3"))

	rows, err := db.Query("SELECT b, a, c FROM t")
	require.NoError(t, err)
	defer rows.Close()

	rs, err := scanResultSet(rows)
	require.NoError(t, err)

	require.Len(t, rs.Columns, 3)
	assert.Equal(t, "b", rs.Columns[0].Name)
	assert.Equal(t, "a", rs.Columns[1].Name)
	assert.Equal(t, "c", rs.Columns[2].Name)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, "1", rs.Rows[0]["b"])
}

func TestScanResultSetNormalizesBytesAndNulls(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"body", "note"}).AddRow([]byte("text"), nil))

	rows, err := db.Query("SELECT body, note FROM t")
	require.NoError(t, err)
	defer rows.Close()

	rs, err := scanResultSet(rows)
	require.NoError(t, err)

	require.Len(t, rs.Rows, 1)
	assert.Equal(t, "text", rs.Rows[0]["body"])
	assert.Nil(t, rs.Rows[0]["note"])
}

func TestScanResultSetZeroRowsKeepsSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"name"}))

	rows, err := db.Query("SELECT name FROM t")
	require.NoError(t, err)
	defer rows.Close()

	rs, err := scanResultSet(rows)
	require.NoError(t, err)

	assert.Len(t, rs.Columns, 1)
	assert.Empty(t, rs.Rows)
}

func TestSemanticType(t *testing.T) {
	assert.Equal(t, report.TypeNumber, semanticType("INT8"))
	assert.Equal(t, report.TypeNumber, semanticType("numeric"))
	assert.Equal(t, report.TypeBool, semanticType("BOOL"))
	assert.Equal(t, report.TypeDate, semanticType("TIMESTAMPTZ"))
	assert.Equal(t, report.TypeText, semanticType("TEXT"))
	assert.Equal(t, report.TypeText, semanticType(""))
}
