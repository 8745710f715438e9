// Package domain defines the core business entities for notesync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Note: A reference to a vault note plus its frontmatter metadata
//   - QueueEntry: A pending sync action for one note
//   - Chunk: A bounded substring of a note's content with its ordinal
//   - Point: The unit stored in the remote vector store
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
