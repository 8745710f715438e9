package driving

import (
	"context"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
)

// SyncEngine drives the event queue and the drain protocol.
type SyncEngine interface {
	// Enqueue records an event for a note. A later event for the same
	// note ID overwrites the earlier one, and restarts the queue's
	// debounce timer.
	Enqueue(id string, note domain.Note, action domain.Action)

	// Drain runs one drain cycle: deletes first, then upserts, both in
	// store-sized batches. Returns domain.ErrSyncInProgress when a cycle
	// is already in flight; callers treat that as a no-op.
	Drain(ctx context.Context) error

	// Pending returns the number of queued entries.
	Pending() int
}
