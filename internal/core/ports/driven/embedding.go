package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - OpenAI-compatible local inference servers
type EmbeddingService interface {
	// EmbedBatch generates embeddings for the given texts. The result is
	// order- and length-preserving: element i embeds texts[i].
	// Implementations batch the input at their configured request size
	// internally; failure of any one request fails the whole call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536, 3072).
	// This must match the vector store collection configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
