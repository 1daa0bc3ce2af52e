// Package builder implements BlockBuilder (SPEC_FULL.md §4.7): it owns
// the open pending block, seals it into a committed Block on demand, and
// snapshots the resulting committed state into the blockchain's
// HistoricalStates.
package builder

import (
	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/crypto"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// NowFunc is overridable in tests; defaults to wall-clock seconds.
type NowFunc func() int64

// Builder is the BlockBuilder of SPEC_FULL.md §4.7.
type Builder struct {
	chain            *blockchain.Blockchain
	sequencerAddress *felt.Felt
	chainID          *felt.Felt
	now              NowFunc

	pending *core.OpenBlock
}

// New constructs a Builder over chain and immediately opens block 0's
// pending block with ParentHash zero, per SPEC_FULL.md §3 (genesis has
// parent_hash = 0).
func New(chain *blockchain.Blockchain, sequencerAddress, chainID *felt.Felt, now NowFunc) *Builder {
	b := &Builder{chain: chain, sequencerAddress: sequencerAddress, chainID: chainID, now: now}
	b.RestartPendingBlock()
	return b
}

// Pending returns the currently open block.
func (b *Builder) Pending() *core.OpenBlock { return b.pending }

// RestartPendingBlock clears the pending transaction list, refreshes the
// timestamp, and sets parent_hash to the last committed block's hash (or
// zero at genesis).
func (b *Builder) RestartPendingBlock() {
	number := uint64(0)
	parent := new(felt.Felt)
	if height, ok := b.chain.Historical.Height(); ok {
		number = height + 1
		if blk, err := b.chain.GetBlock(&core.BlockID{Number: height}); err == nil {
			parent = blk.Hash
		}
	}
	b.pending = &core.OpenBlock{
		ParentHash:        parent,
		Number:            number,
		Timestamp:         b.now(),
		SequencerAddress:  b.sequencerAddress,
		TransactionHashes: nil,
	}
}

// AppendTransaction records hash as part of the pending block, called by
// TxPipeline on successful execution only (SPEC_FULL.md §4.6).
func (b *Builder) AppendTransaction(hash *felt.Felt) {
	b.pending.TransactionHashes = append(b.pending.TransactionHashes, hash)
}

// Seal closes the pending block: computes its hash, synchronizes
// committed state from pending, snapshots HistoricalStates at the new
// height, stamps every included transaction with (block_hash,
// block_number), inserts the sealed Block, and opens the next pending
// block. Empty blocks (no transactions) are allowed.
func (b *Builder) Seal() (*core.Block, error) {
	stateRoot := b.stateRootPlaceholder()

	hash := blockHash(b.pending, stateRoot, b.chainID)

	blk := &core.Block{
		Hash:              hash,
		ParentHash:        b.pending.ParentHash,
		Number:            b.pending.Number,
		Timestamp:         b.pending.Timestamp,
		StateRoot:         stateRoot,
		SequencerAddress:  b.pending.SequencerAddress,
		TransactionHashes: b.pending.TransactionHashes,
	}

	b.chain.Layered.Synchronize()
	b.chain.Historical.Put(blk.Number, blk.Hash, b.chain.Layered.Committed.Snapshot())

	for _, txHash := range blk.TransactionHashes {
		if stored, ok := b.chain.Transactions.Get(*txHash); ok {
			stored.BlockHash = blk.Hash
			stored.BlockNumber = blk.Number
			stored.HasBlock = true
			b.chain.Transactions.Set(*txHash, stored)
		}
	}

	if err := b.chain.Blocks.Insert(*blk.Hash, blk); err != nil {
		return nil, err
	}

	b.RestartPendingBlock()
	return blk, nil
}

// stateRootPlaceholder returns a Pedersen commitment over the pending
// block's number only; no state contents are hashed into it. A full
// Merkle state-root matching the target
// protocol exactly depends on the trie layer this engine drops (see
// DESIGN.md) — block_hash derivation here only needs *a* deterministic
// felt per block, not a protocol-verifiable root, since no peer ever
// verifies this devnet's blocks against another client.
func (b *Builder) stateRootPlaceholder() *felt.Felt {
	return crypto.PedersenArray(new(felt.Felt).SetUint64(b.pending.Number), new(felt.Felt))
}

var blockHeaderFelt = new(felt.Felt).SetBytes([]byte("STARKNET_BLOCK_HASH"))

func blockHash(pending *core.OpenBlock, stateRoot, chainID *felt.Felt) *felt.Felt {
	txCommitment := transactionCommitment(pending.TransactionHashes)
	return crypto.PedersenArray(
		blockHeaderFelt,
		new(felt.Felt).SetUint64(pending.Number),
		stateRoot,
		pending.SequencerAddress,
		new(felt.Felt).SetUint64(uint64(pending.Timestamp)),
		new(felt.Felt).SetUint64(uint64(len(pending.TransactionHashes))),
		txCommitment,
		pending.ParentHash,
		chainID,
	)
}

// transactionCommitment folds the block's transaction hashes into one
// felt. Adapted from the Merkle-root transactionCommitment helper in
// other_examples/...core-transaction.go, simplified to a pedersen array
// since the commitment trie it originally built on is dropped along with
// the rest of the persistent trie layer (see DESIGN.md).
func transactionCommitment(hashes []*felt.Felt) *felt.Felt {
	return crypto.PedersenArray(hashes...)
}
