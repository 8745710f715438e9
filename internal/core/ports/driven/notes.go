package driven

import "context"

// NoteReader provides access to vault note content and metadata.
//
// The sync engine reads content at drain time, not at enqueue time, so
// coalesced events always process the latest version of a note.
type NoteReader interface {
	// Read returns the raw note content, frontmatter included.
	Read(ctx context.Context, path string) (string, error)

	// Metadata returns the parsed frontmatter mapping for a note.
	// Notes without frontmatter yield an empty mapping, not an error.
	Metadata(ctx context.Context, path string) (map[string]any, error)
}
