package core

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/starknet-devnet/devnetgo/core/felt"
)

// HashIndex is an insertion-ordered map from felt hash to value with O(1)
// lookup, used to back the classes, transactions and blocks indices per
// SPEC_FULL.md §4.3. Classes, transactions and blocks are only ever
// inserted, never removed, so a bloom.v3 filter can cheaply reject
// not-present lookups before paying for the exact map hit — useful on the
// hot insertion path where every Declare/Invoke/DeployAccount must check
// for a colliding hash.
type HashIndex[V any] struct {
	values  map[felt.Felt]V
	order   []felt.Felt
	present *bloom.BloomFilter
}

// NewHashIndex constructs an empty index sized for an expected number of
// entries (purely a bloom-filter sizing hint; the index grows unbounded
// regardless).
func NewHashIndex[V any](expectedEntries uint) *HashIndex[V] {
	if expectedEntries == 0 {
		expectedEntries = 1024
	}
	return &HashIndex[V]{
		values:  make(map[felt.Felt]V),
		present: bloom.NewWithEstimates(expectedEntries, 0.001),
	}
}

// Insert adds h -> v. Returns ErrDuplicateHash if h is already present —
// never a legitimate outcome for a cryptographic hash in-range.
func (idx *HashIndex[V]) Insert(h felt.Felt, v V) error {
	if idx.present.Test(h.Marshal()) {
		if _, ok := idx.values[h]; ok {
			return ErrDuplicateHash
		}
	}
	idx.values[h] = v
	idx.order = append(idx.order, h)
	idx.present.Add(h.Marshal())
	return nil
}

// Get looks up h, reporting whether it was present.
func (idx *HashIndex[V]) Get(h felt.Felt) (V, bool) {
	v, ok := idx.values[h]
	return v, ok
}

// Len returns the number of entries added through Insert.
func (idx *HashIndex[V]) Len() int {
	return len(idx.order)
}

// Each iterates entries in insertion order.
func (idx *HashIndex[V]) Each(f func(h felt.Felt, v V) bool) {
	for _, h := range idx.order {
		if !f(h, idx.values[h]) {
			return
		}
	}
}

// Set overwrites an existing key's value in place without affecting
// insertion order or the duplicate-hash check (used by BlockBuilder to
// stamp BlockHash/BlockNumber onto an already-admitted StoredTransaction).
func (idx *HashIndex[V]) Set(h felt.Felt, v V) {
	idx.values[h] = v
}
