package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, DefaultChunkSize, s.size)
	assert.Equal(t, DefaultChunkOverlap, s.overlap)
}

func TestNew_OverlapClampedBelowSize(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, s.overlap)
}

func TestChunk_Empty(t *testing.T) {
	s := New(WithChunkSize(10), WithOverlap(2))
	assert.Nil(t, s.Chunk(""))
}

func TestChunk_ShortInputSingleChunk(t *testing.T) {
	s := New(WithChunkSize(10), WithOverlap(2))
	assert.Equal(t, []string{"short"}, s.Chunk("short"))
}

func TestChunk_FixedWindowsWithoutBoundaries(t *testing.T) {
	// No spaces or newlines: windows advance by size-overlap exactly.
	s := New(WithChunkSize(10), WithOverlap(2))
	text := "AAAAABBBBBCCCCCDDDDD" // 20 chars

	chunks := s.Chunk(text)

	require.Equal(t, []string{"AAAAABBBBB", "BBCCCCCDDD", "DDDD"}, chunks)
}

func TestChunk_ConsecutiveChunksOverlap(t *testing.T) {
	s := New(WithChunkSize(10), WithOverlap(2))
	text := strings.Repeat("x", 50)

	chunks := s.Chunk(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		assert.Equal(t, prev[len(prev)-2:], cur[:2], "chunk %d shares 2 chars with its predecessor", i)
	}
}

func TestChunk_NoChunkExceedsSize(t *testing.T) {
	s := New(WithChunkSize(64), WithOverlap(16))
	text := strings.Repeat("lorem ipsum dolor sit amet ", 100)

	for i, c := range s.Chunk(text) {
		assert.LessOrEqual(t, len(c), 64, "chunk %d", i)
		assert.NotEmpty(t, c)
	}
}

func TestChunk_PrefersNewlineBoundary(t *testing.T) {
	s := New(WithChunkSize(20), WithOverlap(4))
	text := "first line here\nsecond line here and more text after"

	chunks := s.Chunk(text)

	require.Greater(t, len(chunks), 1)
	assert.Equal(t, "first line here\n", chunks[0])
}

func TestChunk_PrefersSpaceWhenNoNewline(t *testing.T) {
	s := New(WithChunkSize(20), WithOverlap(4))
	text := "some words split across a window without breaks"

	chunks := s.Chunk(text)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], " "), "first chunk %q should end at a space", chunks[0])
}

func TestChunk_CoversWholeInput(t *testing.T) {
	s := New(WithChunkSize(32), WithOverlap(8))
	text := strings.Repeat("abcdefghij", 20)

	chunks := s.Chunk(text)
	require.NotEmpty(t, chunks)

	// Every chunk must reappear at its position when walking the input,
	// and the final chunk must reach the end.
	pos := 0
	for i, c := range chunks {
		idx := strings.Index(text[pos:], c)
		require.GreaterOrEqual(t, idx, 0, "chunk %d not found in remaining input", i)
		pos += idx
	}
	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}
