package provider

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MinPostgresVersion is the oldest supported server, as a server_version_num.
// Older servers lack catalog columns the fixed section SQL relies on.
const MinPostgresVersion = 120000

// probePostgres runs the one-time capability detection for a PostgreSQL
// target and enforces the version gate. Everything downstream selects static
// SQL variants from the returned features instead of inspecting the server
// again.
func probePostgres(ctx context.Context, db *sql.DB, timeout time.Duration) (*Features, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	f := &Features{}

	row := db.QueryRowContext(ctx, `SELECT current_setting('server_version_num')::int`)
	if err := row.Scan(&f.VersionNum); err != nil {
		return nil, fmt.Errorf("failed to read server version: %w", err)
	}
	if f.VersionNum < MinPostgresVersion {
		return nil, fmt.Errorf("unsupported server version %d: pgscout requires PostgreSQL %d or later",
			f.VersionNum, MinPostgresVersion/10000)
	}

	row = db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'pg_stat_statements')`)
	if err := row.Scan(&f.StatStatements); err != nil {
		return nil, fmt.Errorf("failed to probe pg_stat_statements: %w", err)
	}

	// queryid joined into pg_stat_statements output from PG14 on.
	f.QueryID = f.StatStatements && f.VersionNum >= 140000

	return f, nil
}
