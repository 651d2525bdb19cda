// Package repository defines the score cache interface and errors.
package repository

import "context"

// Store provides read/write access to cached (player, role) scores.
//
// The cache is a side artifact of batch scoring: jobs append to it on
// completion and external callers read it for cheap lookups. The scoring
// path itself never consults it, so staleness can only mislead a caller who
// skipped Clear after replacing the dataset.
type Store interface {
	// Put records the score for a (player name, role code) pair,
	// overwriting any previous entry.
	Put(ctx context.Context, name, roleCode string, score float64)

	// Get returns the cached score for a (player name, role code) pair.
	// Returns ErrNotFound if no entry exists.
	Get(ctx context.Context, name, roleCode string) (float64, error)

	// Len returns the current number of cached entries.
	Len(ctx context.Context) int

	// Clear removes every entry. Callers must invoke it when the player
	// dataset changes, or cached scores will describe players that no
	// longer exist.
	Clear(ctx context.Context)
}
