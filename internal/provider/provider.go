// Package provider implements the metadata providers that materialize report
// sections from a target database's catalog and statistics views. Providers
// are read-only: they never mutate the target.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgscout/pgscout/internal/report"
)

// DefaultTimeout bounds a single section query so one stuck catalog view
// cannot hang the whole run.
const DefaultTimeout = 30 * time.Second

// Identity describes the connected target, used for the report header and
// the version gate.
type Identity struct {
	Database      string
	Server        string
	ServerVersion string
	VersionNum    int
}

// Features is the result of the one-time capability probe. Section SQL is
// selected from static variants by feature, never assembled dynamically.
type Features struct {
	VersionNum     int
	StatStatements bool
	QueryID        bool
}

// Provider yields ordered result sets for the report sections of one target.
// Fetch returning (nil, nil) means the section has no result set at all; the
// renderers' fallback paths handle it.
type Provider interface {
	report.Fetcher

	// Identity describes the target. Called once, before any section.
	Identity(ctx context.Context) (*Identity, error)

	// Probe runs capability detection and the version gate. It returns an
	// error for an unsupported server, which aborts the run before any
	// report content is produced.
	Probe(ctx context.Context) (*Features, error)

	// Sections returns the fixed, ordered section list for this target.
	Sections() []report.Section

	Close() error
}

// Options configure a provider for one run.
type Options struct {
	URL          string
	Timeout      time.Duration
	SafeMode     bool
	ExportSchema bool
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// SectionCatalog returns the fixed section order for a target kind without
// connecting to anything. Used by the sections listing command.
func SectionCatalog(kind string) ([]report.Section, error) {
	var queries []sectionQuery
	switch kind {
	case "postgres", "postgresql":
		queries = postgresQueries
	case "sqlite":
		queries = sqliteQueries
	default:
		return nil, fmt.Errorf("unknown target kind %q (expected postgres or sqlite)", kind)
	}
	sections := make([]report.Section, len(queries))
	for i, q := range queries {
		sections[i] = q.section
	}
	return sections, nil
}

// Open selects a provider from the target URL: postgres:// and postgresql://
// URLs get the PostgreSQL provider, sqlite:// URLs and bare file paths the
// SQLite provider.
func Open(opts Options) (Provider, error) {
	switch {
	case strings.HasPrefix(opts.URL, "postgres://"), strings.HasPrefix(opts.URL, "postgresql://"):
		return openPostgres(opts)
	case strings.HasPrefix(opts.URL, "sqlite://"):
		opts.URL = strings.TrimPrefix(opts.URL, "sqlite://")
		return openSQLite(opts)
	case opts.URL == "":
		return nil, fmt.Errorf("no target database configured")
	default:
		return openSQLite(opts)
	}
}
