package core

import "github.com/starknet-devnet/devnetgo/core/felt"

// Block is a sealed block per SPEC_FULL.md §3. Genesis has ParentHash
// equal to the zero felt.
type Block struct {
	Hash             *felt.Felt
	ParentHash       *felt.Felt
	Number           uint64
	Timestamp        int64
	StateRoot        *felt.Felt
	SequencerAddress *felt.Felt
	TransactionHashes []*felt.Felt
}

// OpenBlock is the mutable pending block BlockBuilder accumulates
// transactions into before Seal.
type OpenBlock struct {
	ParentHash        *felt.Felt
	Number            uint64
	Timestamp         int64
	SequencerAddress  *felt.Felt
	TransactionHashes []*felt.Felt
}

// BlockID selects which state/block view a read operation targets, per
// SPEC_FULL.md §4.2.
type BlockID struct {
	Pending bool
	Latest  bool
	Number  uint64
	Hash    *felt.Felt
}

// PendingBlockID, LatestBlockID are the two non-parameterised BlockID
// constructors; NumberBlockID and HashBlockID construct the other two.
func PendingBlockID() BlockID { return BlockID{Pending: true} }
func LatestBlockID() BlockID  { return BlockID{Latest: true} }
func NumberBlockID(n uint64) BlockID { return BlockID{Number: n} }
func HashBlockID(h *felt.Felt) BlockID { return BlockID{Hash: h} }
