// Package blockchain is the read-side facade QueryAPI resolves BlockID
// through, shaped directly after juno's own blockchain.Reader contract as
// consumed verbatim in the copied rpc/chain.go (HeadState, PendingState,
// StateAtBlockNumber, StateAtBlockHash, Network, StateCloser). The engine
// keeps no on-disk state, so StateCloser is a no-op here rather than a
// transaction-commit hook, but the shape is kept so rpc.Handler's
// stateByBlockID reads exactly like juno's.
package blockchain

import (
	"errors"

	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/db"
	"github.com/starknet-devnet/devnetgo/utils"
)

// StateCloser mirrors juno's blockchain.StateCloser; always nil-returning
// here since there is no underlying transaction to commit.
type StateCloser func() error

func noopCloser() error { return nil }

// Blockchain owns the single LayeredState, its HistoricalStates, and the
// insertion-ordered transaction/block indices TxPipeline and BlockBuilder
// write into and QueryAPI reads from.
type Blockchain struct {
	Layered     *core.LayeredState
	Historical  *core.HistoricalStates
	Blocks      *core.HashIndex[*core.Block]
	Transactions *core.HashIndex[*core.StoredTransaction]
	network     utils.Network
}

// New constructs an empty Blockchain for the given network.
func New(network utils.Network) *Blockchain {
	return &Blockchain{
		Layered:      core.NewLayeredState(),
		Historical:   core.NewHistoricalStates(),
		Blocks:       core.NewHashIndex[*core.Block](1024),
		Transactions: core.NewHashIndex[*core.StoredTransaction](4096),
		network:      network,
	}
}

// Network returns the configured network/chain-id.
func (b *Blockchain) Network() utils.Network { return b.network }

// HeadState returns the committed (Latest) state view.
func (b *Blockchain) HeadState() (core.StateReader, StateCloser, error) {
	return b.Layered.Committed, noopCloser, nil
}

// PendingState returns the speculative (Pending) state view.
func (b *Blockchain) PendingState() (core.StateReader, StateCloser, error) {
	return b.Layered.Pending, noopCloser, nil
}

// StateAtBlockNumber returns the historical snapshot sealed at height n.
func (b *Blockchain) StateAtBlockNumber(n uint64) (core.StateReader, StateCloser, error) {
	s, err := b.Historical.ByNumber(n)
	if err != nil {
		if errors.Is(err, core.ErrBlockNotFound) {
			return nil, nil, db.ErrKeyNotFound
		}
		return nil, nil, err
	}
	return s, noopCloser, nil
}

// StateAtBlockHash returns the historical snapshot sealed with block hash
// h.
func (b *Blockchain) StateAtBlockHash(h *felt.Felt) (core.StateReader, StateCloser, error) {
	s, err := b.Historical.ByHash(h)
	if err != nil {
		if errors.Is(err, core.ErrBlockNotFound) {
			return nil, nil, db.ErrKeyNotFound
		}
		return nil, nil, err
	}
	return s, noopCloser, nil
}

// StateByID resolves any BlockID to a state view, the single choke point
// SPEC_FULL.md §4.2 describes for Pending/Latest/Number/Hash routing.
func (b *Blockchain) StateByID(id *core.BlockID) (core.StateReader, StateCloser, error) {
	switch {
	case id.Pending:
		return b.PendingState()
	case id.Latest:
		return b.HeadState()
	case id.Hash != nil:
		return b.StateAtBlockHash(id.Hash)
	default:
		return b.StateAtBlockNumber(id.Number)
	}
}

// GetBlock resolves id to a sealed Block. Pending/Latest both resolve to
// the most recently sealed block for read purposes (there is no sealed
// "pending block" entity yet — BlockBuilder exposes the open block
// separately via its own accessor).
func (b *Blockchain) GetBlock(id *core.BlockID) (*core.Block, error) {
	switch {
	case id.Hash != nil:
		blk, ok := b.Blocks.Get(*id.Hash)
		if !ok {
			return nil, core.ErrBlockNotFound
		}
		return blk, nil
	default:
		n := id.Number
		if id.Pending || id.Latest {
			height, ok := b.Historical.Height()
			if !ok {
				return nil, core.ErrBlockNotFound
			}
			n = height
		}
		var found *core.Block
		b.Blocks.Each(func(_ felt.Felt, blk *core.Block) bool {
			if blk.Number == n {
				found = blk
				return false
			}
			return true
		})
		if found == nil {
			return nil, core.ErrBlockNotFound
		}
		return found, nil
	}
}

// GetTransaction returns the StoredTransaction for hash.
func (b *Blockchain) GetTransaction(hash *felt.Felt) (*core.StoredTransaction, error) {
	tx, ok := b.Transactions.Get(*hash)
	if !ok {
		return nil, core.ErrTransactionNotFound
	}
	return tx, nil
}
