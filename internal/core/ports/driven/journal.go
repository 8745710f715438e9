package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
)

// SyncJournal records drain history locally for the status command.
// It is an optional dependency; journal failures never abort a drain.
type SyncJournal interface {
	// RecordRun appends one completed (or aborted) drain cycle.
	RecordRun(ctx context.Context, run *domain.SyncRun) error

	// RecentRuns returns up to limit runs, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// TouchNotes records that the given note IDs were upserted at the
	// given time.
	TouchNotes(ctx context.Context, ids []string, at time.Time) error

	// ForgetNotes drops the sync records for the given note IDs after
	// their vectors were deleted.
	ForgetNotes(ctx context.Context, ids []string) error

	// NoteCount returns the number of notes with a sync record.
	NoteCount(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
