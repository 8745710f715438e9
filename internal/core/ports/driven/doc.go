// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - NoteReader: Reads vault note content and frontmatter metadata
//   - Chunker: Splits normalised text into overlapping chunks
//   - EmbeddingService: Generates vector embeddings for chunk batches
//   - VectorStore: Remote vector store mutations (delete by note ID, upsert)
//   - SettingsStore: Persistent user configuration
//
// # Optional Interfaces
//
//   - SyncJournal: Local record of drain runs and per-note sync times.
//     When nil, the engine simply does not record history.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
