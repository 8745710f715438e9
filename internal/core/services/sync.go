package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/notesync-cli/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.SyncEngine = (*SyncEngine)(nil)

// Normalizer strips the frontmatter block from raw note content.
type Normalizer func(raw string) string

// SyncEngine drains the event queue against the remote vector store.
//
// A drain processes deletes first, then upserts, both in batches bounded
// by the store batch size. Within an upsert batch the engine runs the
// delete-before-insert protocol: all existing points for the batch's
// notes are removed before embedding starts, so the store never holds a
// mix of old and new chunk sets for one note. The trade-off is
// availability: a failure after the delete leaves a note with zero
// vectors until the next successful drain.
type SyncEngine struct {
	queue     *EventQueue
	reader    driven.NoteReader
	normalize Normalizer
	chunker   driven.Chunker
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	journal   driven.SyncJournal
	settings  domain.Settings

	// Reentrancy guard: at most one drain cycle in flight process-wide.
	mu       sync.Mutex
	draining bool

	now func() time.Time
}

// NewSyncEngine wires the drain pipeline. The journal may be nil; every
// other dependency is required. The engine registers itself as the
// queue's flush callback, so a debounce timer elapsing triggers a drain.
func NewSyncEngine(
	queue *EventQueue,
	reader driven.NoteReader,
	normalize Normalizer,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	journal driven.SyncJournal,
	settings domain.Settings,
) *SyncEngine {
	e := &SyncEngine{
		queue:     queue,
		reader:    reader,
		normalize: normalize,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		journal:   journal,
		settings:  settings,
		now:       time.Now,
	}

	queue.OnFlush(func() {
		if err := e.Drain(context.Background()); err != nil && !errors.Is(err, domain.ErrSyncInProgress) {
			logger.Warn("drain failed: %v", err)
		}
	})

	return e
}

// Enqueue records an event for a note and restarts the debounce timer.
func (e *SyncEngine) Enqueue(id string, note domain.Note, action domain.Action) {
	logger.Debug("queued %s for %s", action, id)
	e.queue.Enqueue(id, note, action)
}

// Pending returns the number of queued entries.
func (e *SyncEngine) Pending() int {
	return e.queue.Len()
}

// Drain runs one drain cycle. A second trigger while a cycle is in
// flight returns domain.ErrSyncInProgress without starting remote work;
// entries not yet drained remain queued for the next trigger.
//
// On a remote failure the cycle aborts: batches committed so far keep
// their queue entries removed, the failing batch and everything after it
// stay queued, and the error propagates to the caller. The next
// debounce- or manually-triggered drain is the retry mechanism.
func (e *SyncEngine) Drain(ctx context.Context) error {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return domain.ErrSyncInProgress
	}
	e.draining = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.draining = false
		e.mu.Unlock()
	}()

	// A manual drain bypasses a pending debounce timer.
	e.queue.CancelTimer()

	upserts, deletes := e.queue.Snapshot()
	if len(upserts) == 0 && len(deletes) == 0 {
		return nil
	}

	logger.Info("drain: %d upserts, %d deletes", len(upserts), len(deletes))

	run := domain.SyncRun{StartedAt: e.now()}
	err := e.drain(ctx, upserts, deletes, &run)
	run.EndedAt = e.now()
	if err != nil {
		run.Error = err.Error()
	}
	e.recordRun(ctx, &run)

	return err
}

func (e *SyncEngine) drain(ctx context.Context, upserts, deletes []domain.QueueEntry, run *domain.SyncRun) error {
	// Deletes first: a note recreated under the same ID is handled by
	// the upsert's own delete-before-insert step.
	for _, batch := range batchEntries(deletes, e.settings.StoreBatchSize) {
		ids := entryIDs(batch)
		if err := e.store.DeleteByNoteIDs(ctx, ids); err != nil {
			return fmt.Errorf("delete batch: %w", err)
		}
		e.queue.Remove(ids...)
		e.forgetNotes(ctx, ids)
		run.Deleted += len(ids)
	}

	for _, batch := range batchEntries(upserts, e.settings.StoreBatchSize) {
		if err := e.processUpsertBatch(ctx, batch); err != nil {
			return err
		}
		run.Upserted += len(batch)
	}

	return nil
}

// processUpsertBatch replaces the stored vectors for one batch of notes.
// Queue entries are removed only after the whole batch has committed.
func (e *SyncEngine) processUpsertBatch(ctx context.Context, batch []domain.QueueEntry) error {
	var (
		chunks    []domain.Chunk
		metadata  = make(map[string]map[string]any, len(batch))
		processed = make([]string, 0, len(batch))
	)

	for _, entry := range batch {
		raw, err := e.reader.Read(ctx, entry.Note.Path)
		if err != nil {
			// Local read failure: skip the note and leave its entry
			// queued so the next drain retries it.
			logger.Warn("read %s: %v", entry.Note.Path, err)
			continue
		}

		processed = append(processed, entry.NoteID)
		metadata[entry.NoteID] = entry.Note.Metadata

		body := e.normalize(raw)
		if body == "" {
			// Empty notes keep zero vectors; the unconditional delete
			// below clears any prior chunk set.
			logger.Debug("skipping empty note %s", entry.NoteID)
			continue
		}

		for i, text := range e.chunker.Chunk(body) {
			chunks = append(chunks, domain.Chunk{
				NoteID:  entry.NoteID,
				Text:    text,
				Ordinal: i,
			})
		}
	}

	if len(processed) == 0 {
		return nil
	}

	// Delete-before-insert: clear every note in the batch before
	// embedding, so a failure partway never leaves a mix of old and new
	// chunk sets. Worst case a note has zero vectors until the next
	// successful drain.
	if err := e.store.DeleteByNoteIDs(ctx, processed); err != nil {
		return fmt.Errorf("delete before insert: %w", err)
	}

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		vectors, err := e.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		if len(vectors) != len(chunks) {
			return fmt.Errorf("%w: embedding count %d does not match chunk count %d",
				domain.ErrInvalidInput, len(vectors), len(chunks))
		}

		points := make([]domain.Point, len(chunks))
		createdAt := e.now()
		for i, c := range chunks {
			points[i] = domain.Point{
				ID:     uuid.New().String(),
				Vector: vectors[i],
				Payload: domain.Payload{
					NoteID:     c.NoteID,
					Metadata:   metadata[c.NoteID],
					ChunkText:  c.Text,
					ChunkHash:  hashChunk(c.Text),
					ChunkIndex: c.Ordinal,
					CreatedAt:  createdAt,
				},
			}
		}

		if err := e.store.UpsertPoints(ctx, points); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
	}

	e.queue.Remove(processed...)
	e.touchNotes(ctx, processed)

	return nil
}

func (e *SyncEngine) recordRun(ctx context.Context, run *domain.SyncRun) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordRun(ctx, run); err != nil {
		logger.Warn("record run: %v", err)
	}
}

func (e *SyncEngine) touchNotes(ctx context.Context, ids []string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.TouchNotes(ctx, ids, e.now()); err != nil {
		logger.Warn("journal touch: %v", err)
	}
}

func (e *SyncEngine) forgetNotes(ctx context.Context, ids []string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.ForgetNotes(ctx, ids); err != nil {
		logger.Warn("journal forget: %v", err)
	}
}

// batchEntries splits entries into groups of at most size.
func batchEntries(entries []domain.QueueEntry, size int) [][]domain.QueueEntry {
	if size <= 0 {
		size = 1
	}

	var batches [][]domain.QueueEntry
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, entries[start:end])
	}
	return batches
}

func entryIDs(entries []domain.QueueEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.NoteID
	}
	return ids
}

func hashChunk(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
