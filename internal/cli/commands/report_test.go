package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pgscout/pgscout/internal/report"
)

func TestReportFilename(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)

	assert.Equal(t, "appdb_20260301_123045.md", reportFilename("appdb", ts))
}

func TestReportFilenameSanitizesName(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)

	// SQLite targets are file paths; only the base name survives, with
	// unsafe characters mapped away.
	assert.Equal(t, "app_db_20260301_123045.md", reportFilename("/data/app db", ts))
}

func TestRendererName(t *testing.T) {
	assert.Equal(t, "csv", rendererName(report.KindCSV))
	assert.Equal(t, "definitions", rendererName(report.KindDefinitions))
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}
