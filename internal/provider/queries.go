package provider

import "github.com/pgscout/pgscout/internal/report"

// sectionQuery binds one report section to its static catalog SQL. Optional
// behavior across server versions is handled by whole-query variants chosen
// from the probe result, never by assembling SQL text at run time.
type sectionQuery struct {
	section report.Section

	sql string

	// altSQL replaces sql when altWhen matches the probed features.
	altSQL  string
	altWhen func(Features) bool

	// enabled gates the whole section on a probed capability. A disabled
	// section yields no result set at all.
	enabled func(Features) bool

	// redactText lists free-text columns replaced with the redaction marker
	// in safe mode.
	redactText []string

	// redactBody names the definition body column replaced wholesale in
	// safe mode.
	redactBody string

	// appendix marks the schema-appendix sections toggled by ExportSchema.
	appendix bool
}

func (q sectionQuery) query(f Features) string {
	if q.altSQL != "" && q.altWhen != nil && q.altWhen(f) {
		return q.altSQL
	}
	return q.sql
}

// systemSchemas is the filter shared by every appendix query.
const systemSchemas = `('pg_catalog', 'information_schema', 'pg_toast')`

// postgresQueries is the fixed section order for PostgreSQL targets.
// Reordering entries changes the report contract; append only.
var postgresQueries = []sectionQuery{
	{
		section: report.Section{
			ID:     "database_overview",
			Title:  "Database Overview",
			Source: "pg_database, pg_stat_activity",
			Why:    "Size, transaction-ID age and connection load frame every finding below.",
		},
		sql: `
SELECT d.datname AS database_name,
       pg_size_pretty(pg_database_size(d.datname)) AS total_size,
       age(d.datfrozenxid) AS xid_age,
       (SELECT count(*) FROM pg_stat_activity a WHERE a.datname = d.datname) AS connections,
       pg_encoding_to_char(d.encoding) AS encoding,
       d.datcollate AS collation
FROM pg_database d
WHERE d.datname = current_database()`,
	},
	{
		section: report.Section{
			ID:     "extensions",
			Title:  "Installed Extensions",
			Source: "pg_extension, pg_namespace",
			Why:    "Extensions change planner behavior and available diagnostics.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY e.extname) AS "RowNumber",
       e.extname AS extension,
       e.extversion AS version,
       n.nspname AS schema
FROM pg_extension e
JOIN pg_namespace n ON n.oid = e.extnamespace`,
	},
	{
		section: report.Section{
			ID:     "settings",
			Title:  "Non-Default Settings",
			Source: "pg_settings",
			Why:    "Deviations from defaults are the usual suspects behind surprising behavior.",
			Notes:  "Defaults and overrides from the command line are excluded.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY name) AS "RowNumber",
       name, setting, unit, source, short_desc
FROM pg_settings
WHERE source NOT IN ('default', 'override')`,
		redactText: []string{"short_desc"},
	},
	{
		section: report.Section{
			ID:     "activity",
			Title:  "Connection Activity",
			Source: "pg_stat_activity",
			Why:    "State mix shows idle-in-transaction pileups and connection pool health.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY coalesce(state, 'unknown')) AS "RowNumber",
       coalesce(state, 'unknown') AS state,
       count(*) AS sessions,
       coalesce(max(extract(epoch FROM now() - state_change))::bigint, 0) AS max_seconds_in_state
FROM pg_stat_activity
WHERE datname = current_database()
GROUP BY coalesce(state, 'unknown')`,
	},
	{
		section: report.Section{
			ID:     "table_stats",
			Title:  "Table Statistics",
			Source: "pg_stat_user_tables",
			Why:    "Sequential-scan heavy or dead-tuple heavy tables point at missing indexes and vacuum debt.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY schemaname, relname) AS "RowNumber",
       schemaname AS schema, relname AS table_name,
       seq_scan, idx_scan, n_live_tup, n_dead_tup,
       last_vacuum, last_autovacuum, last_analyze
FROM pg_stat_user_tables`,
	},
	{
		section: report.Section{
			ID:     "index_usage",
			Title:  "Index Usage",
			Source: "pg_stat_user_indexes",
			Why:    "Scan counts and sizes together show which indexes pay their way.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY schemaname, relname, indexrelname) AS "RowNumber",
       schemaname AS schema, relname AS table_name, indexrelname AS index_name,
       idx_scan, idx_tup_read,
       pg_size_pretty(pg_relation_size(indexrelid)) AS index_size
FROM pg_stat_user_indexes`,
	},
	{
		section: report.Section{
			ID:     "unused_indexes",
			Title:  "Unused Indexes",
			Source: "pg_stat_user_indexes, pg_index",
			Why:    "Never-scanned non-constraint indexes cost writes and disk for nothing.",
			Notes:  "Statistics reset or standby-only read patterns can make a used index appear here.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY pg_relation_size(s.indexrelid) DESC, s.indexrelname) AS "RowNumber",
       s.schemaname AS schema, s.relname AS table_name, s.indexrelname AS index_name,
       pg_size_pretty(pg_relation_size(s.indexrelid)) AS index_size
FROM pg_stat_user_indexes s
JOIN pg_index i ON i.indexrelid = s.indexrelid
WHERE s.idx_scan = 0 AND NOT i.indisunique AND NOT i.indisprimary`,
	},
	{
		section: report.Section{
			ID:     "sequences",
			Title:  "Sequence Capacity",
			Source: "pg_sequences",
			Why:    "A sequence near its maximum value is an outage waiting for an insert.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY schemaname, sequencename) AS "RowNumber",
       schemaname AS schema, sequencename AS sequence_name,
       last_value, max_value,
       CASE WHEN last_value IS NULL THEN 0
            ELSE round(100.0 * last_value / max_value, 2) END AS percent_used
FROM pg_sequences
WHERE schemaname NOT IN ` + systemSchemas,
	},
	{
		section: report.Section{
			ID:     "top_statements",
			Title:  "Top Statements",
			Source: "pg_stat_statements",
			Why:    "The heaviest statements by total execution time are the tuning shortlist.",
			Gate:   "Requires the pg_stat_statements extension.",
		},
		enabled: func(f Features) bool { return f.StatStatements },
		sql: `
SELECT row_number() OVER (ORDER BY total_exec_time DESC) AS "RowNumber",
       calls, round(total_exec_time::numeric, 2) AS total_ms,
       round(mean_exec_time::numeric, 2) AS mean_ms,
       rows, query
FROM pg_stat_statements
ORDER BY total_exec_time DESC
LIMIT 25`,
		altWhen: func(f Features) bool { return f.QueryID },
		altSQL: `
SELECT row_number() OVER (ORDER BY total_exec_time DESC) AS "RowNumber",
       queryid, calls, round(total_exec_time::numeric, 2) AS total_ms,
       round(mean_exec_time::numeric, 2) AS mean_ms,
       rows, query
FROM pg_stat_statements
ORDER BY total_exec_time DESC
LIMIT 25`,
		redactText: []string{"query"},
	},

	// Schema appendix. Gated as a set by the ExportSchema option.
	{
		appendix: true,
		section: report.Section{
			ID:     "schemas",
			Title:  "Schemas",
			Source: "pg_namespace",
			Why:    "Namespaces delimit everything in the appendix below.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY n.nspname) AS "RowNumber",
       n.nspname AS schema, pg_get_userbyid(n.nspowner) AS owner
FROM pg_namespace n
WHERE n.nspname NOT IN ` + systemSchemas + `
  AND n.nspname NOT LIKE 'pg_temp%'`,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "tables",
			Title:  "Tables",
			Source: "pg_class, pg_namespace",
			Why:    "Row estimates and sizes give the shape of the data model.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY n.nspname, c.relname) AS "RowNumber",
       n.nspname AS schema, c.relname AS table_name,
       c.reltuples::bigint AS estimated_rows,
       pg_size_pretty(pg_total_relation_size(c.oid)) AS total_size,
       CASE c.relkind WHEN 'r' THEN 'table' WHEN 'p' THEN 'partitioned table' END AS kind
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p')
  AND n.nspname NOT IN ` + systemSchemas,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "columns",
			Title:  "Columns",
			Source: "information_schema.columns",
			Why:    "Column types and nullability are the ground truth for query advice.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY table_schema, table_name, ordinal_position) AS "RowNumber",
       table_schema AS schema, table_name, column_name, ordinal_position,
       data_type, is_nullable, column_default
FROM information_schema.columns
WHERE table_schema NOT IN ` + systemSchemas,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "comments",
			Title:  "Object Comments",
			Source: "pg_description, pg_class",
			Why:    "Free-text comments often encode intent the schema alone cannot.",
			Notes:  "Comment text is redacted when safe mode is on.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY n.nspname, c.relname, d.objsubid) AS "RowNumber",
       n.nspname AS schema, c.relname AS object_name,
       CASE WHEN d.objsubid = 0 THEN 'table' ELSE 'column' END AS comment_on,
       d.description AS comment
FROM pg_description d
JOIN pg_class c ON c.oid = d.objoid
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname NOT IN ` + systemSchemas,
		redactText: []string{"comment"},
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "constraints",
			Title:  "Constraints",
			Source: "pg_constraint",
			Why:    "Keys and checks define the integrity rules queries can rely on.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY n.nspname, rel.relname, con.conname) AS "RowNumber",
       n.nspname AS schema, rel.relname AS table_name, con.conname AS constraint_name,
       CASE con.contype
            WHEN 'p' THEN 'PRIMARY KEY' WHEN 'f' THEN 'FOREIGN KEY'
            WHEN 'u' THEN 'UNIQUE' WHEN 'c' THEN 'CHECK' WHEN 'x' THEN 'EXCLUSION'
            ELSE con.contype::text END AS constraint_type,
       pg_get_constraintdef(con.oid) AS definition
FROM pg_constraint con
JOIN pg_class rel ON rel.oid = con.conrelid
JOIN pg_namespace n ON n.oid = rel.relnamespace
WHERE n.nspname NOT IN ` + systemSchemas,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "indexes",
			Title:  "Index Definitions",
			Source: "pg_indexes",
			Why:    "Index DDL shows exactly what access paths exist today.",
		},
		sql: `
SELECT row_number() OVER (ORDER BY schemaname, tablename, indexname) AS "RowNumber",
       schemaname AS schema, tablename AS table_name, indexname AS index_name, indexdef
FROM pg_indexes
WHERE schemaname NOT IN ` + systemSchemas,
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "views",
			Title:  "View Definitions",
			Source: "pg_views",
			Why:    "View bodies are part of the query surface and often hide the slow join.",
			Kind:   report.KindDefinitions,
			Definition: report.DefinitionColumns{
				Type:   "object_type",
				Schema: "schema_name",
				Name:   "object_name",
				Body:   "definition",
			},
		},
		sql: `
SELECT row_number() OVER (ORDER BY schemaname, viewname) AS "RowNumber",
       'VIEW' AS object_type, schemaname AS schema_name, viewname AS object_name,
       definition
FROM pg_views
WHERE schemaname NOT IN ` + systemSchemas,
		redactBody: "definition",
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "functions",
			Title:  "Function Definitions",
			Source: "pg_proc, pg_get_functiondef()",
			Why:    "Server-side routines can dominate load while staying invisible to app traces.",
			Kind:   report.KindDefinitions,
			Definition: report.DefinitionColumns{
				Type:   "object_type",
				Schema: "schema_name",
				Name:   "object_name",
				Body:   "definition",
			},
		},
		sql: `
SELECT row_number() OVER (ORDER BY n.nspname, p.proname) AS "RowNumber",
       CASE p.prokind WHEN 'p' THEN 'PROCEDURE' ELSE 'FUNCTION' END AS object_type,
       n.nspname AS schema_name, p.proname AS object_name,
       pg_get_functiondef(p.oid) AS definition
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname NOT IN ` + systemSchemas + `
  AND p.prokind IN ('f', 'p')`,
		redactBody: "definition",
	},
	{
		appendix: true,
		section: report.Section{
			ID:     "triggers",
			Title:  "Trigger Definitions",
			Source: "pg_trigger, pg_get_triggerdef()",
			Why:    "Triggers add hidden write amplification to otherwise simple statements.",
			Kind:   report.KindDefinitions,
			Definition: report.DefinitionColumns{
				Type:   "object_type",
				Schema: "schema_name",
				Name:   "object_name",
				Body:   "definition",
			},
		},
		sql: `
SELECT row_number() OVER (ORDER BY n.nspname, t.tgname) AS "RowNumber",
       'TRIGGER' AS object_type, n.nspname AS schema_name, t.tgname AS object_name,
       pg_get_triggerdef(t.oid) AS definition
FROM pg_trigger t
JOIN pg_class c ON c.oid = t.tgrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE NOT t.tgisinternal
  AND n.nspname NOT IN ` + systemSchemas,
		redactBody: "definition",
	},
}
