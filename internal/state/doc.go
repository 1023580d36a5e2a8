// Package state holds the mutable bits of a pkgdrop session: the target host,
// the status and error messages, and the recent install attempts.
//
// # Concurrency Model
//
// Install and scan commands run on their own goroutines and write into the
// Store; the UI reads copies through Snapshot. A sync.RWMutex keeps reads and
// writes from tearing, but nothing orders the writers. When two installs
// finish close together, the status and error strings reflect whichever
// finished last, and the two strings are never reconciled with each other:
//
//	install A ──┐                 ┌── SetStatus("A installation started...")
//	            ├──> Store (mutex) ┤
//	install B ──┘                 └── SetError("Installation failed...")
//
// # Attempts
//
// Each install action is recorded as an Attempt keyed by a random UUID.
// RecordAttempt inserts new attempts at the front and updates existing ones in
// place, so the history is newest first. Only the latest MaxAttempts entries
// are kept.
//
// # Snapshots
//
// Snapshot returns the struct by value with its Attempts slice copied, so
// callers may mutate what they get back without affecting the store.
package state
