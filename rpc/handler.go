// Package rpc is the engine's QueryAPI surface (spec.md §4.8), folded
// onto a single Handler type the way juno folds QueryAPI-shaped methods
// directly onto its own rpc.Handler (rather than a standalone package) —
// the copied rpc/chain.go methods are this exact layout, retargeted from
// juno's blockchain/core/vm packages to this engine's own.
package rpc

import (
	"errors"

	"go.uber.org/zap"

	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/builder"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/db"
	"github.com/starknet-devnet/devnetgo/jsonrpc"
	"github.com/starknet-devnet/devnetgo/pipeline"
	"github.com/starknet-devnet/devnetgo/predeploy"
)

// Handler implements every JSON-RPC method this devnet exposes, plumbed
// straight through to the engine's blockchain/builder/pipeline, logging
// through the same zap.Logger juno threads into rpc.Handler
// (h.callAndLogErr in the copied rpc/chain.go).
type Handler struct {
	bcReader *blockchain.Blockchain
	builder  *builder.Builder
	pipeline *pipeline.TxPipeline
	accounts *predeploy.Result
	log      *zap.SugaredLogger
}

// New constructs a Handler.
func New(bc *blockchain.Blockchain, b *builder.Builder, p *pipeline.TxPipeline, accounts *predeploy.Result, log *zap.SugaredLogger) *Handler {
	return &Handler{bcReader: bc, builder: b, pipeline: p, accounts: accounts, log: log}
}

func (h *Handler) callAndLogErr(f func() error, msg string) {
	if err := f(); err != nil {
		h.log.Errorw(msg, "err", err)
	}
}

// stateByBlockID mirrors juno's own method of the same name in the copied
// rpc/chain.go: resolve BlockID through bcReader.StateByID, translating
// db.ErrKeyNotFound into the RPC-facing ErrBlockNotFound.
func (h *Handler) stateByBlockID(id *BlockID) (core.StateReader, blockchain.StateCloser, *jsonrpc.Error) {
	reader, closer, err := h.bcReader.StateByID(id.core())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil, ErrBlockNotFound
		}
		return nil, nil, ErrInternal.CloneWithData(err.Error())
	}
	return reader, closer, nil
}

func (h *Handler) blockByID(id *BlockID) (*core.Block, *jsonrpc.Error) {
	blk, err := h.bcReader.GetBlock(id.core())
	if err != nil {
		return nil, ErrBlockNotFound
	}
	return blk, nil
}
