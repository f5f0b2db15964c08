package provider

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/pgscout/pgscout/internal/report"
)

// sqliteProvider profiles a local SQLite database file. The section list is
// the SQLite analogue of the PostgreSQL one: sqlite_master plus the pragma
// table-valued functions.
type sqliteProvider struct {
	db       *sql.DB
	path     string
	timeout  time.Duration
	safeMode bool
	queries  []sectionQuery
}

// sqliteDSN builds a read-only DSN for path. The driver only honors mode=
// on file: DSNs; a bare path would silently open read-write.
func sqliteDSN(path string) string {
	return "file:" + path + "?mode=ro"
}

func openSQLite(opts Options) (Provider, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(opts.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}

	queries := sqliteQueries
	if !opts.ExportSchema {
		queries = withoutAppendix(queries)
	}

	return &sqliteProvider{
		db:       db,
		path:     opts.URL,
		timeout:  opts.timeout(),
		safeMode: opts.SafeMode,
		queries:  queries,
	}, nil
}

func (p *sqliteProvider) Identity(ctx context.Context) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var version string
	if err := p.db.QueryRowContext(ctx, `SELECT sqlite_version()`).Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to read server identity: %w", err)
	}
	return &Identity{
		Database:      p.path,
		Server:        "local file",
		ServerVersion: "SQLite " + version,
		VersionNum:    sqliteVersionNum(version),
	}, nil
}

// Probe enforces the version gate. Window functions arrived in SQLite 3.25
// and every section query uses row_number().
func (p *sqliteProvider) Probe(ctx context.Context) (*Features, error) {
	id, err := p.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if id.VersionNum < 3025000 {
		return nil, fmt.Errorf("unsupported SQLite version %s: pgscout requires 3.25 or later", id.ServerVersion)
	}
	return &Features{VersionNum: id.VersionNum}, nil
}

func (p *sqliteProvider) Sections() []report.Section {
	sections := make([]report.Section, len(p.queries))
	for i, q := range p.queries {
		sections[i] = q.section
	}
	return sections
}

func (p *sqliteProvider) Fetch(ctx context.Context, sectionID string) (*report.ResultSet, error) {
	var q sectionQuery
	found := false
	for _, candidate := range p.queries {
		if candidate.section.ID == sectionID {
			q, found = candidate, true
			break
		}
	}
	if !found {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, q.sql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	rs, err := scanResultSet(rows)
	if err != nil {
		return nil, err
	}
	if p.safeMode {
		redactResultSet(rs, q)
	}
	return rs, nil
}

func (p *sqliteProvider) Close() error {
	return p.db.Close()
}

// sqliteVersionNum converts "3.45.1" to 3045001, mirroring how PostgreSQL
// numbers its server_version_num.
func sqliteVersionNum(version string) int {
	parts := strings.Split(version, ".")
	num := 0
	for i := 0; i < 3; i++ {
		part := 0
		if i < len(parts) {
			part, _ = strconv.Atoi(parts[i])
		}
		if i == 0 {
			num = part * 1000000
		} else if i == 1 {
			num += part * 1000
		} else {
			num += part
		}
	}
	return num
}

// sqliteQueries is the fixed section order for SQLite targets.
var sqliteQueries = []sectionQuery{
	{
		section: report.Section{
			ID:     "database_overview",
			Title:  "Database Overview",
			Source: "pragma_page_count, pragma_page_size, pragma_journal_mode",
			Why:    "File size and journal mode frame every finding below.",
		},
		sql: `
SELECT (SELECT page_count FROM pragma_page_count()) *
       (SELECT page_size FROM pragma_page_size()) AS size_bytes,
       (SELECT page_size FROM pragma_page_size()) AS page_size,
       (SELECT journal_mode FROM pragma_journal_mode()) AS journal_mode,
       (SELECT freelist_count FROM pragma_freelist_count()) AS free_pages`,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "tables",
			Title:  "Tables",
			Source: "sqlite_master",
			Why:    "The table list is the shape of the data model.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY name) AS "RowNumber",
       name AS table_name
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "columns",
			Title:  "Columns",
			Source: "pragma_table_info",
			Why:    "Column types and nullability are the ground truth for query advice.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY m.name, t.cid) AS "RowNumber",
       m.name AS table_name, t.name AS column_name, t.cid + 1 AS ordinal_position,
       t.type AS data_type,
       CASE t."notnull" WHEN 1 THEN 'NO' ELSE 'YES' END AS is_nullable,
       t.dflt_value AS column_default, t.pk AS primary_key
FROM sqlite_master m
JOIN pragma_table_info(m.name) t
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'`,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "indexes",
			Title:  "Indexes",
			Source: "sqlite_master",
			Why:    "Index DDL shows exactly what access paths exist today.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY tbl_name, name) AS "RowNumber",
       tbl_name AS table_name, name AS index_name, sql AS indexdef
FROM sqlite_master
WHERE type = 'index' AND name NOT LIKE 'sqlite_%'`,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "definitions",
			Title:  "Object Definitions",
			Source: "sqlite_master.sql",
			Why:    "Original DDL including views and triggers, exactly as created.",
			Kind:   report.KindDefinitions,
			Definition: report.DefinitionColumns{
				Type: "object_type",
				Name: "object_name",
				Body: "definition",
			},
		},
		sql: `
SELECT row_number() OVER (ORDER BY type, name) AS "RowNumber",
       upper(type) AS object_type, name AS object_name, sql AS definition
FROM sqlite_master
WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'`,
		redactBody: "definition",
	},
}
