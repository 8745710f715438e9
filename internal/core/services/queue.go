package services

import (
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
)

// Timer is the queue's view of a pending debounce timer.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was stopped
	// before firing, matching time.Timer semantics.
	Stop() bool
}

// TimerFactory creates a timer that calls fn once after d has elapsed.
// The default factory wraps time.AfterFunc; tests inject a manual
// factory to drive the debounce deterministically.
type TimerFactory func(d time.Duration, fn func()) Timer

func defaultTimerFactory(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// EventQueue is a deduplicating, debounced mailbox keyed by note ID.
//
// Rapid repeated events for the same note collapse into the latest
// action (last-write-wins, even across upsert and delete). One delay
// timer is associated with the whole queue, not per note: every enqueue
// cancels and restarts it, and only after the configured delay passes
// uninterrupted does the flush callback run.
type EventQueue struct {
	mu       sync.Mutex
	entries  map[string]domain.QueueEntry
	delay    time.Duration
	newTimer TimerFactory
	timer    Timer
	flush    func()
}

// QueueOption configures an EventQueue.
type QueueOption func(*EventQueue)

// WithTimerFactory replaces the wall-clock timer with a custom one.
// Used by tests to fire the debounce manually.
func WithTimerFactory(f TimerFactory) QueueOption {
	return func(q *EventQueue) {
		q.newTimer = f
	}
}

// NewEventQueue creates an empty queue with the given debounce delay.
// The flush callback is set separately via OnFlush because the queue and
// the sync engine reference each other.
func NewEventQueue(delay time.Duration, opts ...QueueOption) *EventQueue {
	q := &EventQueue{
		entries:  make(map[string]domain.QueueEntry),
		delay:    delay,
		newTimer: defaultTimerFactory,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// OnFlush sets the callback invoked when the debounce timer elapses.
func (q *EventQueue) OnFlush(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.flush = fn
}

// Enqueue records an event for a note, overwriting any existing entry
// for the same ID, and restarts the debounce timer.
func (q *EventQueue) Enqueue(id string, note domain.Note, action domain.Action) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries[id] = domain.QueueEntry{
		NoteID: id,
		Note:   note,
		Action: action,
	}

	q.restartTimerLocked()
}

// Snapshot returns the queued entries partitioned by action, ordered by
// note ID for deterministic batching. It removes nothing; removal
// happens only after the caller confirms successful processing, so a
// failed drain can be retried without losing queued work.
func (q *EventQueue) Snapshot() (upserts, deletes []domain.QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, entry := range q.entries {
		switch entry.Action {
		case domain.ActionDelete:
			deletes = append(deletes, entry)
		default:
			upserts = append(upserts, entry)
		}
	}

	sort.Slice(upserts, func(i, j int) bool { return upserts[i].NoteID < upserts[j].NoteID })
	sort.Slice(deletes, func(i, j int) bool { return deletes[i].NoteID < deletes[j].NoteID })

	return upserts, deletes
}

// Remove drops the entries for the given note IDs. Called by the drain
// after a batch's remote calls have succeeded.
func (q *EventQueue) Remove(ids ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, id := range ids {
		delete(q.entries, id)
	}
}

// Len returns the number of queued entries.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// CancelTimer stops a pending debounce timer, if any. A manual drain
// calls this so a stale timer does not fire a second cycle right after.
func (q *EventQueue) CancelTimer() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopTimerLocked()
}

func (q *EventQueue) restartTimerLocked() {
	q.stopTimerLocked()

	flush := q.flush
	if flush == nil || q.delay < 0 {
		return
	}
	q.timer = q.newTimer(q.delay, flush)
}

func (q *EventQueue) stopTimerLocked() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}
