package domain

import (
	"errors"
	"fmt"
	"time"
)

// Default settings values.
const (
	DefaultQdrantURL       = "http://localhost:6333"
	DefaultCollection      = "notes"
	DefaultVectorSize      = 1536
	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultStoreBatchSize  = 512
	DefaultEmbedBatchSize  = 64
	DefaultChunkSize       = 1000
	DefaultChunkOverlap    = 200
	DefaultDebounceDelayMS = 3000
	DefaultIDField         = "id"
)

// Settings is the full user-tunable configuration surface.
type Settings struct {
	// VaultPath is the root directory of the markdown vault.
	VaultPath string `toml:"vault_path"`

	// QdrantURL is the vector store endpoint.
	QdrantURL string `toml:"qdrant_url"`

	// QdrantAPIKey is the vector store credential. Optional for local
	// instances.
	QdrantAPIKey string `toml:"qdrant_api_key"`

	// Collection is the vector store collection name.
	Collection string `toml:"collection"`

	// VectorSize is the embedding dimensionality; must match the model.
	VectorSize int `toml:"vector_size"`

	// EmbeddingBaseURL is the embedding provider endpoint. Empty means
	// the OpenAI default.
	EmbeddingBaseURL string `toml:"embedding_base_url"`

	// EmbeddingAPIKey is the embedding provider credential.
	EmbeddingAPIKey string `toml:"embedding_api_key"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// StoreBatchSize bounds how many notes are grouped per vector store
	// request, and how many queue entries form one drain batch.
	StoreBatchSize int `toml:"store_batch_size"`

	// EmbedBatchSize bounds how many chunks go into one embedding
	// request.
	EmbedBatchSize int `toml:"embed_batch_size"`

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the approximate shared length between consecutive
	// chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// DebounceDelayMS is the quiet period before a queued burst is
	// drained, in milliseconds.
	DebounceDelayMS int `toml:"debounce_delay_ms"`

	// IDField is the frontmatter field holding the note's unique ID.
	IDField string `toml:"id_field"`
}

// DefaultSettings returns settings with sensible initial values.
// Credentials and the vault path have no defaults and must be configured.
func DefaultSettings() Settings {
	return Settings{
		QdrantURL:       DefaultQdrantURL,
		Collection:      DefaultCollection,
		VectorSize:      DefaultVectorSize,
		EmbeddingModel:  DefaultEmbeddingModel,
		StoreBatchSize:  DefaultStoreBatchSize,
		EmbedBatchSize:  DefaultEmbedBatchSize,
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		DebounceDelayMS: DefaultDebounceDelayMS,
		IDField:         DefaultIDField,
	}
}

// DebounceDelay returns the debounce delay as a duration.
func (s Settings) DebounceDelay() time.Duration {
	return time.Duration(s.DebounceDelayMS) * time.Millisecond
}

// Validate checks the settings for values the sync engine cannot work
// with. It does not verify connectivity.
func (s Settings) Validate() error {
	var errs []error

	if s.VaultPath == "" {
		errs = append(errs, fmt.Errorf("%w: vault_path is required", ErrInvalidInput))
	}
	if s.QdrantURL == "" {
		errs = append(errs, fmt.Errorf("%w: qdrant_url is required", ErrInvalidInput))
	}
	if s.Collection == "" {
		errs = append(errs, fmt.Errorf("%w: collection is required", ErrInvalidInput))
	}
	if s.VectorSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: vector_size must be positive", ErrInvalidInput))
	}
	if s.StoreBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: store_batch_size must be positive", ErrInvalidInput))
	}
	if s.EmbedBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: embed_batch_size must be positive", ErrInvalidInput))
	}
	if s.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: chunk_size must be positive", ErrInvalidInput))
	}
	if s.ChunkOverlap < 0 {
		errs = append(errs, fmt.Errorf("%w: chunk_overlap must not be negative", ErrInvalidInput))
	}
	if s.ChunkOverlap >= s.ChunkSize && s.ChunkSize > 0 {
		errs = append(errs, fmt.Errorf("%w: chunk_overlap must be smaller than chunk_size", ErrInvalidInput))
	}
	if s.DebounceDelayMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_delay_ms must not be negative", ErrInvalidInput))
	}
	if s.IDField == "" {
		errs = append(errs, fmt.Errorf("%w: id_field is required", ErrInvalidInput))
	}

	return errors.Join(errs...)
}
