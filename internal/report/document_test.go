package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentString(t *testing.T) {
	doc := NewDocument()
	doc.Append("one")
	doc.Append("")
	doc.Append("three")

	assert.Equal(t, "one\n\nthree\n", doc.String())
	assert.Equal(t, 3, doc.Len())
}

func TestDocumentSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	doc := NewDocument()
	doc.Append("# Report")

	path, err := doc.Save(dir, "appdb_20260301_120000.md")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Report\n", string(content))
}

func TestDocumentSaveUnwritableDir(t *testing.T) {
	doc := NewDocument()
	doc.Append("# Report")

	// A regular file in the directory position makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := doc.Save(blocker, "report.md")
	require.Error(t, err)

	// The content is still intact for the console fallback.
	var sink strings.Builder
	_, werr := doc.WriteTo(&sink)
	require.NoError(t, werr)
	assert.Equal(t, "# Report\n", sink.String())
}
