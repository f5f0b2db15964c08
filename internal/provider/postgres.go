package provider

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/pgscout/pgscout/internal/report"
)

// postgresProvider profiles one PostgreSQL database through the pgx stdlib
// driver. All queries are read-only catalog and statistics lookups.
type postgresProvider struct {
	db       *sql.DB
	timeout  time.Duration
	safeMode bool
	queries  []sectionQuery
	features Features
	probed   bool
}

func openPostgres(opts Options) (Provider, error) {
	db, err := sql.Open("pgx", opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	queries := postgresQueries
	if !opts.ExportSchema {
		queries = withoutAppendix(queries)
	}

	return &postgresProvider{
		db:       db,
		timeout:  opts.timeout(),
		safeMode: opts.SafeMode,
		queries:  queries,
	}, nil
}

// newPostgresProvider wraps an existing handle; used by tests.
func newPostgresProvider(db *sql.DB, opts Options) *postgresProvider {
	queries := postgresQueries
	if !opts.ExportSchema {
		queries = withoutAppendix(queries)
	}
	return &postgresProvider{
		db:       db,
		timeout:  opts.timeout(),
		safeMode: opts.SafeMode,
		queries:  queries,
	}
}

func withoutAppendix(queries []sectionQuery) []sectionQuery {
	kept := make([]sectionQuery, 0, len(queries))
	for _, q := range queries {
		if !q.appendix {
			kept = append(kept, q)
		}
	}
	return kept
}

func (p *postgresProvider) Identity(ctx context.Context) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	const q = `
SELECT current_database(),
       coalesce(inet_server_addr()::text || ':' || inet_server_port()::text, 'local socket'),
       version(),
       current_setting('server_version_num')::int`

	id := &Identity{}
	row := p.db.QueryRowContext(ctx, q)
	if err := row.Scan(&id.Database, &id.Server, &id.ServerVersion, &id.VersionNum); err != nil {
		return nil, fmt.Errorf("failed to read server identity: %w", err)
	}
	return id, nil
}

func (p *postgresProvider) Probe(ctx context.Context) (*Features, error) {
	f, err := probePostgres(ctx, p.db, p.timeout)
	if err != nil {
		return nil, err
	}
	p.features = *f
	p.probed = true
	return f, nil
}

func (p *postgresProvider) Sections() []report.Section {
	sections := make([]report.Section, len(p.queries))
	for i, q := range p.queries {
		sections[i] = q.section
	}
	return sections
}

// Fetch materializes one section's result set. A section gated off by the
// probe yields (nil, nil); any query error is fatal for the run.
func (p *postgresProvider) Fetch(ctx context.Context, sectionID string) (*report.ResultSet, error) {
	q, ok := p.lookup(sectionID)
	if !ok {
		return nil, nil
	}
	if q.enabled != nil && !q.enabled(p.features) {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, q.query(p.features))
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

func (p *postgresProvider) lookup(sectionID string) (sectionQuery, bool) {
	for _, q := range p.queries {
		if q.section.ID == sectionID {
			return q, true
		}
	}
	return sectionQuery{}, false
}

func (p *postgresProvider) Close() error {
	return p.db.Close()
}

// redactResultSet applies the safe-mode policy at the provider layer:
// free-text columns and whole definition bodies are replaced before the rows
// ever reach a renderer. The renderer's own empty-body marker is only the
// safety net behind this.
func redactResultSet(rs *report.ResultSet, q sectionQuery) {
	for _, row := range rs.Rows {
		for _, col := range q.redactText {
			if v, ok := row[col]; ok && v != nil {
				row[col] = report.RedactionMarker
			}
		}
		if q.redactBody != "" {
			if v, ok := row[q.redactBody]; ok && v != nil {
				row[q.redactBody] = report.RedactedBody
			}
		}
	}
}
