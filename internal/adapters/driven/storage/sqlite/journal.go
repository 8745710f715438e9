package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
)

// SyncJournal returns a SyncJournal interface backed by this store.
func (s *Store) SyncJournal() driven.SyncJournal {
	return &syncJournal{store: s}
}

// syncJournal implements driven.SyncJournal.
type syncJournal struct {
	store *Store
}

var _ driven.SyncJournal = (*syncJournal)(nil)

// RecordRun appends one drain cycle to the run history.
func (j *syncJournal) RecordRun(ctx context.Context, run *domain.SyncRun) error {
	_, err := j.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (started_at, ended_at, upserted, deleted, error)
		VALUES (?, ?, ?, ?, ?)
	`, run.StartedAt.UTC(), run.EndedAt.UTC(), run.Upserted, run.Deleted, run.Error)

	if err != nil {
		return fmt.Errorf("recording sync run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, most recent first.
func (j *syncJournal) RecentRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := j.store.db.QueryContext(ctx, `
		SELECT started_at, ended_at, upserted, deleted, error
		FROM sync_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.SyncRun
		if err := rows.Scan(&run.StartedAt, &run.EndedAt,
			&run.Upserted, &run.Deleted, &run.Error); err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}

	return runs, nil
}

// TouchNotes records that the given note IDs were upserted at the given time.
func (j *syncJournal) TouchNotes(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := j.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO note_state (note_id, last_synced_at)
		VALUES (?, ?)
		ON CONFLICT(note_id) DO UPDATE SET
			last_synced_at = excluded.last_synced_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	at = at.UTC()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id, at); err != nil {
			return fmt.Errorf("touching note %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ForgetNotes drops the sync records for the given note IDs.
func (j *syncJournal) ForgetNotes(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := j.store.db.ExecContext(ctx,
		"DELETE FROM note_state WHERE note_id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("forgetting notes: %w", err)
	}
	return nil
}

// NoteCount returns the number of notes with a sync record.
func (j *syncJournal) NoteCount(ctx context.Context) (int, error) {
	var count int
	err := j.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM note_state").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting notes: %w", err)
	}
	return count, nil
}

// Close releases resources. The underlying store owns the connection,
// so this is a no-op.
func (j *syncJournal) Close() error {
	return nil
}
