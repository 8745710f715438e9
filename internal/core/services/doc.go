// Package services implements the core sync logic: the deduplicating,
// debounced event queue and the drain protocol that keeps the remote
// vector store consistent with the vault.
//
// Services depend only on domain types and driven ports; all I/O goes
// through injected interfaces so the drain protocol is testable without
// a network.
package services
