package driven

import (
	"context"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
)

// VectorStore performs mutations against the remote vector store.
//
// Points are addressed for deletion by the note ID held in their payload,
// never by point ID. That makes "replace all points for a note" a single
// filtered delete followed by an upsert, with no lookup step.
type VectorStore interface {
	// EnsureCollection creates the configured collection if it does not
	// exist. Idempotent.
	EnsureCollection(ctx context.Context) error

	// DeleteByNoteIDs removes every point whose payload note ID is in
	// ids (a disjunction across the slice). Implementations batch the
	// ids at their configured request size. A no-op for empty ids.
	DeleteByNoteIDs(ctx context.Context, ids []string) error

	// UpsertPoints writes the given points, batching at the configured
	// request size. Callers assign fresh point IDs before the call; the
	// store never reuses or looks up prior identifiers.
	UpsertPoints(ctx context.Context, points []domain.Point) error

	// Close releases resources.
	Close() error
}
