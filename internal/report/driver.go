package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SectionKind selects the renderer a section's result set is handed to.
type SectionKind int

const (
	// KindCSV renders the result set as one fenced csv block.
	KindCSV SectionKind = iota
	// KindDefinitions renders one fenced sql block per row.
	KindDefinitions
)

// Section describes one unit of the report. The driver renders sections in
// slice order; that order is part of the output contract and must be stable
// across runs for the same target.
type Section struct {
	ID    string
	Title string

	// Provenance lines for the section's text fence.
	Source string
	Why    string
	Notes  string
	Gate   string

	Kind       SectionKind
	Definition DefinitionColumns
}

// Fetcher materializes the result set for one section. Returning (nil, nil)
// means the section has no result set at all; the renderers' fallback paths
// fire. A non-nil error is fatal for the run: a mid-section failure must
// abort rather than leave a malformed fence in the document.
type Fetcher interface {
	Fetch(ctx context.Context, sectionID string) (*ResultSet, error)
}

// Meta is the report header block, written before any section.
type Meta struct {
	Target        string
	Server        string
	ServerVersion string
	GeneratedAt   time.Time
	SafeMode      bool
	RunID         string
}

// Driver renders the full report document: preamble first, then every
// section in order, strictly sequentially.
type Driver struct {
	em      *Emitter
	fetcher Fetcher
	redact  bool
	log     *zap.Logger
}

// NewDriver creates a driver writing through em. The redact flag is fixed
// for the lifetime of the run. log may be nil.
func NewDriver(em *Emitter, fetcher Fetcher, redact bool, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{em: em, fetcher: fetcher, redact: redact, log: log}
}

// WriteHeader emits the report title and metadata block.
func (d *Driver) WriteHeader(meta Meta) {
	d.em.Emit("# Database Diagnostic Report")
	d.em.Blank()
	d.em.Emit("```text")
	d.em.Emit("Target: {%1}", meta.Target)
	d.em.Emit("Server: {%1}", meta.Server)
	d.em.Emit("Version: {%1}", meta.ServerVersion)
	d.em.Emit("Generated: {%1}", meta.GeneratedAt.UTC().Format(time.RFC3339))
	d.em.Emit("Safe mode: {%1}", boolWord(meta.SafeMode))
	d.em.Emit("Run ID: {%1}", meta.RunID)
	d.em.Emit("```")
	d.em.Blank()
}

// Run renders every section in order. One section is fully fetched and
// rendered before the next begins.
func (d *Driver) Run(ctx context.Context, sections []Section) error {
	for _, s := range sections {
		if err := d.renderSection(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) renderSection(ctx context.Context, s Section) error {
	d.em.Emit("## {%1}", s.Title)
	d.em.Blank()
	d.em.Emit("```text")
	d.em.Emit("Source: {%1}", s.Source)
	d.em.Emit("Why: {%1}", s.Why)
	if s.Notes != "" {
		d.em.Emit("Notes: {%1}", s.Notes)
	}
	if s.Gate != "" {
		d.em.Emit("Gate: {%1}", s.Gate)
	}
	d.em.Emit("```")
	d.em.Blank()

	rs, err := d.fetcher.Fetch(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("section %s: %w", s.ID, err)
	}
	if rs == nil {
		d.log.Debug("no result set for section", zap.String("section", s.ID))
	}

	switch s.Kind {
	case KindDefinitions:
		opts := DefinitionOptions{Columns: s.Definition, Redact: d.redact, Section: s.ID}
		RenderDefinitions(d.em, rs, opts)
	default:
		RenderCSV(d.em, rs)
	}

	d.em.Blank()
	return nil
}

func boolWord(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
