// Package vault provides the markdown vault connector. It reads notes,
// resolves their frontmatter identifiers, and translates filesystem
// activity into enqueue calls on the sync engine.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/notesync-cli/internal/logger"
	"github.com/custodia-labs/notesync-cli/internal/normalisers/frontmatter"
)

// Ensure Connector implements the interface.
var _ driven.NoteReader = (*Connector)(nil)

// EnqueueFunc receives one observed note event. The sync engine's
// Enqueue method satisfies this signature.
type EnqueueFunc func(noteID string, note domain.Note, action domain.Action)

// Connector walks and watches a markdown vault. Only *.md and
// *.markdown files participate; hidden files and directories are
// skipped.
//
// Deleted files no longer carry their frontmatter, so the connector
// remembers the path-to-ID mapping of every note it has seen and uses
// it to issue delete events.
type Connector struct {
	rootPath string
	idField  string

	mu       sync.Mutex
	knownIDs map[string]string // absolute path -> note ID
	closed   bool
}

// New creates a vault connector rooted at rootPath. The idField names
// the frontmatter field holding each note's unique identifier.
func New(rootPath, idField string) *Connector {
	return &Connector{
		rootPath: rootPath,
		idField:  idField,
		knownIDs: make(map[string]string),
	}
}

// Validate checks that the vault root exists and is a directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(c.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", c.rootPath)
		}
		return fmt.Errorf("vault path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path is not a directory: %s", c.rootPath)
	}
	return nil
}

// Read returns the raw note content, frontmatter included.
func (c *Connector) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading note %s: %w", path, err)
	}
	return string(data), nil
}

// Metadata returns the parsed frontmatter mapping for a note. Notes
// without frontmatter yield an empty mapping.
func (c *Connector) Metadata(ctx context.Context, path string) (map[string]any, error) {
	raw, err := c.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	metadata, _, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return metadata, nil
}

// Scan walks the vault and enqueues one upsert per identifiable note.
// Notes whose frontmatter lacks a usable ID are skipped with a warning.
func (c *Connector) Scan(ctx context.Context, enqueue EnqueueFunc) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	return filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != c.rootPath && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(d.Name()) || !isMarkdown(path) {
			return nil
		}

		c.observeFile(ctx, path, enqueue)
		return nil
	})
}

// Watch streams vault changes into enqueue until ctx is cancelled.
// Created and written markdown files become upserts; removed and
// renamed files become deletes. Directories created under the root are
// added to the watch as they appear.
func (c *Connector) Watch(ctx context.Context, enqueue EnqueueFunc) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("vault connector is closed")
	}
	c.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the root and every existing subdirectory
	err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != c.rootPath && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching vault: %w", err)
	}

	logger.Debug("watching vault at %s", c.rootPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			c.handleFsEvent(ctx, event, watcher, enqueue)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("vault watcher: %v", err)
		}
	}
}

// Close marks the connector closed. Close is idempotent.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// handleFsEvent translates one fsnotify event into enqueue calls.
func (c *Connector) handleFsEvent(ctx context.Context, event fsnotify.Event, watcher *fsnotify.Watcher, enqueue EnqueueFunc) {
	path := event.Name

	if isHidden(filepath.Base(path)) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			// New subdirectory: watch it and pick up anything already inside
			if err := watcher.Add(path); err != nil {
				logger.Warn("watching new directory %s: %v", path, err)
				return
			}
			c.scanSubtree(ctx, path, enqueue)
			return
		}
		if isMarkdown(path) {
			c.observeFile(ctx, path, enqueue)
		}

	case event.Op.Has(fsnotify.Write):
		if isMarkdown(path) {
			c.observeFile(ctx, path, enqueue)
		}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if !isMarkdown(path) {
			return
		}
		c.forgetFile(path, enqueue)
	}
}

// observeFile resolves a note's ID and enqueues an upsert for it.
func (c *Connector) observeFile(ctx context.Context, path string, enqueue EnqueueFunc) {
	metadata, err := c.Metadata(ctx, path)
	if err != nil {
		logger.Warn("skipping %s: %v", path, err)
		return
	}

	noteID, ok := domain.ResolveNoteID(metadata, c.idField)
	if !ok {
		logger.Debug("skipping %s: frontmatter has no usable %q field", path, c.idField)
		return
	}

	c.mu.Lock()
	c.knownIDs[path] = noteID
	c.mu.Unlock()

	enqueue(noteID, domain.Note{Path: path, Metadata: metadata}, domain.ActionUpsert)
}

// forgetFile enqueues a delete for a file seen before at this path.
func (c *Connector) forgetFile(path string, enqueue EnqueueFunc) {
	c.mu.Lock()
	noteID, ok := c.knownIDs[path]
	delete(c.knownIDs, path)
	c.mu.Unlock()

	if !ok {
		logger.Debug("ignoring removal of untracked file %s", path)
		return
	}

	enqueue(noteID, domain.Note{Path: path}, domain.ActionDelete)
}

// scanSubtree enqueues upserts for markdown files under dir.
func (c *Connector) scanSubtree(ctx context.Context, dir string, enqueue EnqueueFunc) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best effort, the watcher reports the rest
		}
		if d.IsDir() {
			if path != dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isHidden(d.Name()) && isMarkdown(path) {
			c.observeFile(ctx, path, enqueue)
		}
		return nil
	})
}

// isMarkdown reports whether path has a markdown extension.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// isHidden reports whether name is a dotfile. The special entries "."
// and ".." are not considered hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
