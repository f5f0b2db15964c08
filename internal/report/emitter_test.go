package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitPlainText(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit("hello world")

	require.Equal(t, 1, doc.Len())
	assert.Equal(t, "hello world\n", doc.String())
}

func TestEmitNoTransformation(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	// Leading/trailing whitespace and case must survive untouched.
	em.Emit("  MiXeD Case \t ")

	assert.Equal(t, "  MiXeD Case \t \n", doc.String())
}

func TestEmitSubstitution(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit("{%1} and {%2}", "A", "B")

	assert.Equal(t, "A and B\n", doc.String())
}

func TestEmitUnsuppliedTokenLeftVerbatim(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit("{%1} and {%2}", "A")

	assert.Equal(t, "A and {%2}\n", doc.String())
}

func TestEmitParamValueNotResubstituted(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	// A replacement containing token syntax must stay literal.
	em.Emit("{%1} {%2}", "{%2}", "B")

	assert.Equal(t, "{%2} B\n", doc.String())
}

func TestEmitAllEightTokens(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit("{%1}{%2}{%3}{%4}{%5}{%6}{%7}{%8}", "a", "b", "c", "d", "e", "f", "g", "h")

	assert.Equal(t, "abcdefgh\n", doc.String())
}

func TestEmitTokenOutOfRangeLeftVerbatim(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit("{%9} and {%0}", "A")

	assert.Equal(t, "{%9} and {%0}\n", doc.String())
}

func TestEmitEmptyStringProducesOneLine(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit("")

	require.Equal(t, 1, doc.Len())
	assert.Equal(t, "\n", doc.String())
}

func TestEmitChunksLongText(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	long := strings.Repeat("x", ChunkSize*2+100)
	em.Emit(long)

	lines := doc.Lines()
	require.Len(t, lines, 3)
	assert.Len(t, lines[0], ChunkSize)
	assert.Len(t, lines[1], ChunkSize)
	assert.Len(t, lines[2], 100)
	// Byte-for-byte content preserved across chunk boundaries.
	assert.Equal(t, long, strings.Join(lines, ""))
}

func TestEmitChunkBoundaryIsRuneAligned(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	long := strings.Repeat("é", ChunkSize+1)
	em.Emit(long)

	lines := doc.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("é", ChunkSize), lines[0])
	assert.Equal(t, "é", lines[1])
	assert.Equal(t, long, strings.Join(lines, ""))
}

func TestEmitChunkedOutputIsByteFaithfulAtSink(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	long := strings.Repeat("x", ChunkSize+100)
	em.Emit(long)

	// The flushed document carries exactly one terminator per emission; a
	// chunk boundary contributes no characters of its own.
	assert.Equal(t, long+"\n", doc.String())
}

func TestEmitChunkedThenPlainLinesFlushCleanly(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	long := strings.Repeat("y", ChunkSize*2+7)
	em.Emit("before")
	em.Emit(long)
	em.Emit("after")

	assert.Equal(t, "before\n"+long+"\n"+"after\n", doc.String())
}

func TestEmitExactChunkSizeIsSingleLine(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	em.Emit(strings.Repeat("x", ChunkSize))

	assert.Equal(t, 1, doc.Len())
}

func TestEmitPreservesEmbeddedNewlinesWhenChunking(t *testing.T) {
	doc := NewDocument()
	em := NewEmitter(doc)

	long := strings.Repeat("line one\nline two\n", 500)
	em.Emit(long)

	// Chunking must neither insert nor remove characters; the chunk records
	// concatenate back to the original text, embedded newlines included.
	assert.Equal(t, long, strings.Join(doc.Lines(), ""))
	for _, chunk := range doc.Lines() {
		assert.LessOrEqual(t, len([]rune(chunk)), ChunkSize)
	}
}
