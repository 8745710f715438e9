// Package chunker splits note text into overlapping chunks.
package chunker

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Splitter produces overlapping substrings no longer than the configured
// size, preferring to break at a newline or space near the window end so
// chunks tend to align with natural text boundaries.
// It implements the driven.Chunker interface.
type Splitter struct {
	size    int
	overlap int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		size:    DefaultChunkSize,
		overlap: DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay below the chunk size or windows cannot advance.
	if s.overlap >= s.size {
		s.overlap = s.size / 4
	}

	return s
}

// Chunk splits text into overlapping chunks. Empty input yields no
// chunks; input no longer than the chunk size yields exactly one.
func (s *Splitter) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.size {
		return []string{text}
	}

	estimated := len(text)/(s.size-s.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < len(text) {
		end := start + s.size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		cut := s.cutPoint(text, start, end)
		chunks = append(chunks, text[start:cut])
		start = cut - s.overlap
	}

	return chunks
}

// cutPoint finds where to end the chunk starting at start. It scans
// backwards from end for a newline, then a space, but never shrinks the
// chunk below half the configured size (and always keeps the cut beyond
// the overlap so windows make progress).
func (s *Splitter) cutPoint(text string, start, end int) int {
	low := start + s.size/2
	if min := start + s.overlap + 1; low < min {
		low = min
	}

	for i := end - 1; i > low; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	for i := end - 1; i > low; i-- {
		if text[i] == ' ' {
			return i + 1
		}
	}
	return end
}
