// Package qdrant provides a vector store adapter speaking the Qdrant
// REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultBatchSize = 512
	distanceCosine   = "Cosine"

	// payloadNoteIDKey is the payload field filtered deletes match on.
	payloadNoteIDKey = "note_id"
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// URL is the Qdrant endpoint, e.g. http://localhost:6333.
	URL string

	// APIKey is the api-key header value. Optional for local instances.
	APIKey string

	// Collection is the collection name.
	Collection string

	// VectorSize is the embedding dimensionality for EnsureCollection.
	VectorSize int

	// BatchSize is the maximum ids per delete request and points per
	// upsert request (default: 512).
	BatchSize int

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a REST client for a Qdrant collection. Points are addressed
// for deletion by the note_id payload field, never by point ID.
type Store struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	collection string
	vectorSize int
	batchSize  int
}

// NewStore creates a Qdrant store client.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant: URL is required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant: collection is required")
	}
	if cfg.VectorSize <= 0 {
		return nil, fmt.Errorf("qdrant: vector size must be positive")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		vectorSize: cfg.VectorSize,
		batchSize:  cfg.BatchSize,
	}, nil
}

// EnsureCollection creates the collection if it does not exist.
// Qdrant answers 200 for a fresh create and 409 when the collection is
// already there; both count as success.
func (s *Store) EnsureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.vectorSize,
			"distance": distanceCosine,
		},
	}

	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
	status, respBody, err := s.do(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	if status != http.StatusOK && status != http.StatusConflict {
		return fmt.Errorf("ensure collection: status %d: %s", status, respBody)
	}
	return nil
}

// DeleteByNoteIDs removes every point whose note_id payload matches any
// of ids. One filtered-delete request is issued per batch of at most the
// configured batch size; the filter is a disjunction across the batch.
func (s *Store) DeleteByNoteIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.baseURL, s.collection)

	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		should := make([]map[string]any, len(batch))
		for i, id := range batch {
			should[i] = map[string]any{
				"key":   payloadNoteIDKey,
				"match": map[string]any{"value": id},
			}
		}
		body := map[string]any{
			"filter": map[string]any{"should": should},
		}

		status, respBody, err := s.do(ctx, http.MethodPost, url, body)
		if err != nil {
			return fmt.Errorf("delete points: %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("delete points: status %d: %s", status, respBody)
		}
	}

	return nil
}

// UpsertPoints writes the given points in batches of at most the
// configured batch size.
func (s *Store) UpsertPoints(ctx context.Context, points []domain.Point) error {
	if len(points) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.baseURL, s.collection)

	for start := 0; start < len(points); start += s.batchSize {
		end := start + s.batchSize
		if end > len(points) {
			end = len(points)
		}

		body := map[string]any{"points": points[start:end]}

		status, respBody, err := s.do(ctx, http.MethodPut, url, body)
		if err != nil {
			return fmt.Errorf("upsert points: %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("upsert points: status %d: %s", status, respBody)
		}
	}

	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// do issues one JSON request and returns the status code and body text.
func (s *Store) do(ctx context.Context, method, url string, body any) (int, string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, string(respBody), nil
}
