package core

import "github.com/starknet-devnet/devnetgo/core/felt"

// HistoricalStates maps block_number -> StateStore snapshot and
// block_hash -> block_number, per SPEC_FULL.md §4.4, written once by
// BlockBuilder at each Seal.
type HistoricalStates struct {
	byNumber     map[uint64]*StateStore
	numberByHash map[felt.Felt]uint64
}

// NewHistoricalStates constructs an empty history.
func NewHistoricalStates() *HistoricalStates {
	return &HistoricalStates{
		byNumber:     make(map[uint64]*StateStore),
		numberByHash: make(map[felt.Felt]uint64),
	}
}

// Put records the committed StateStore at the given height, addressable
// by both its number and its sealed block hash.
func (h *HistoricalStates) Put(number uint64, hash *felt.Felt, snapshot *StateStore) {
	h.byNumber[number] = snapshot
	h.numberByHash[*hash] = number
}

// ByNumber returns the snapshot at height n, or ErrBlockNotFound.
func (h *HistoricalStates) ByNumber(n uint64) (*StateStore, error) {
	s, ok := h.byNumber[n]
	if !ok {
		return nil, ErrBlockNotFound
	}
	return s, nil
}

// ByHash returns the snapshot sealed with the given block hash, or
// ErrBlockNotFound.
func (h *HistoricalStates) ByHash(hash *felt.Felt) (*StateStore, error) {
	n, ok := h.numberByHash[*hash]
	if !ok {
		return nil, ErrBlockNotFound
	}
	return h.ByNumber(n)
}

// Height reports the most recently sealed height and whether any block
// has been sealed yet.
func (h *HistoricalStates) Height() (uint64, bool) {
	if len(h.byNumber) == 0 {
		return 0, false
	}
	max := uint64(0)
	first := true
	for n := range h.byNumber {
		if first || n > max {
			max = n
			first = false
		}
	}
	return max, true
}
