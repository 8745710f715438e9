package driven

// Chunker splits normalised text into overlapping substrings.
//
// No chunk exceeds the implementation's configured maximum size and
// consecutive chunks share approximately its configured overlap,
// preferring to break at natural text boundaries. The sync engine treats
// chunking as opaque and is correct for any chunk count >= 0; empty input
// must yield zero chunks.
type Chunker interface {
	Chunk(text string) []string
}
