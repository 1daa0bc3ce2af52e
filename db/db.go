// Package db holds the sentinel error the blockchain read path uses to
// signal "no such view", mirroring juno's own db.ErrKeyNotFound (used
// verbatim in the copied rpc/chain.go's stateByBlockID and in
// cemabi33-juno/core/state.go). The engine carries no on-disk database —
// SPEC_FULL.md §6 is explicit that persisted state is none — but keeping
// this as its own tiny package preserves the teacher's idiom of a shared
// not-found sentinel that every storage-shaped component returns instead
// of each inventing its own.
package db

import "errors"

// ErrKeyNotFound is returned by blockchain lookups (historical state by
// number/hash) when no matching entry exists.
var ErrKeyNotFound = errors.New("key not found")
