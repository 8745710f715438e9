package domain

import "time"

// Action is the pending sync operation for a queued note.
type Action int

// Queue actions.
const (
	// ActionUpsert replaces a note's stored vectors with a freshly
	// computed set.
	ActionUpsert Action = iota

	// ActionDelete removes all of a note's stored vectors.
	ActionDelete
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionUpsert:
		return "upsert"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Note is a reference to a vault note at the time an event was observed.
// Content is not carried here; the sync engine reads it at drain time so
// that coalesced events always process the latest version.
type Note struct {
	// Path is the note's location within the vault.
	Path string

	// Metadata is the parsed frontmatter mapping.
	Metadata map[string]any
}

// QueueEntry is one pending action in the event queue. The queue holds at
// most one entry per note ID; a later event for the same ID overwrites
// the earlier one, even across upsert and delete.
type QueueEntry struct {
	// NoteID is the externally supplied unique identifier.
	NoteID string

	// Note references the note the action applies to.
	Note Note

	// Action is the last-known action for this note.
	Action Action
}

// Chunk is a bounded substring of a note's normalised content. Chunks are
// ephemeral: produced during a drain cycle and consumed straight into an
// embedding request.
type Chunk struct {
	// NoteID links the chunk back to its note.
	NoteID string

	// Text is the chunk content.
	Text string

	// Ordinal is the 0-based position within the note, in the order the
	// chunker emitted it. Reading order is reconstructable from the
	// stored payload via this field.
	Ordinal int
}

// Point is the unit stored in the remote vector store: one embedding
// vector plus payload, one per chunk. Point IDs are freshly generated per
// upsert and never reused; deletion is addressed by the payload note ID,
// not by point ID.
type Point struct {
	// ID is the store-side point identifier.
	ID string `json:"id"`

	// Vector is the embedding, length equal to the configured vector size.
	Vector []float32 `json:"vector"`

	// Payload carries everything needed to interpret the vector.
	Payload Payload `json:"payload"`
}

// Payload is the stored metadata for one point. NoteID is the field the
// store filters on when replacing or removing a note's vectors.
type Payload struct {
	NoteID     string         `json:"note_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	ChunkText  string         `json:"chunk_text"`
	ChunkHash  string         `json:"chunk_hash"`
	ChunkIndex int            `json:"chunk_index"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SyncRun records one completed drain cycle for the journal.
type SyncRun struct {
	// StartedAt is when the drain began.
	StartedAt time.Time

	// EndedAt is when the drain finished or aborted.
	EndedAt time.Time

	// Upserted is the number of queue entries committed as upserts.
	Upserted int

	// Deleted is the number of queue entries committed as deletes.
	Deleted int

	// Error holds the failure message for an aborted cycle, empty on
	// success.
	Error string
}
