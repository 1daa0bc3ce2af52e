// Package pipeline implements TxPipeline (spec.md §4.6): admission of
// broadcast transactions, common prechecks, snapshot/execute/commit-or-
// restore, and transaction indexing — grounded on juno's own broadcast
// decoding flow in rpc/chain.go (the copied rpc layer calls into this
// package exactly where juno's own rpc.Handler calls into its mempool).
package pipeline

import (
	"github.com/pkg/errors"

	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/builder"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/vm"
)

// TxPipeline owns admission of new transactions against a Blockchain's
// pending state, appending accepted ones to a Builder's open block.
type TxPipeline struct {
	chain    *blockchain.Blockchain
	builder  *builder.Builder
	executor vm.Executor
	chainID  *felt.Felt
	gasPrice *felt.Felt
}

// New constructs a TxPipeline wired to chain's pending state, builder's
// open block, and the given Executor.
func New(chain *blockchain.Blockchain, b *builder.Builder, executor vm.Executor, chainID, gasPrice *felt.Felt) *TxPipeline {
	return &TxPipeline{chain: chain, builder: b, executor: executor, chainID: chainID, gasPrice: gasPrice}
}

// AddResult is the pipeline-level outcome of add_transaction: a
// transaction hash always, plus the derived address for DeployAccount.
type AddResult struct {
	TransactionHash *felt.Felt
	ContractAddress *felt.Felt
}

func (p *TxPipeline) blockContext() *vm.BlockContext {
	pending := p.builder.Pending()
	return &vm.BlockContext{
		Number:           pending.Number,
		Timestamp:        pending.Timestamp,
		SequencerAddress: pending.SequencerAddress,
		GasPrice:         p.gasPrice,
		FeeTokenAddress:  nil,
		ChainID:          p.chainID,
	}
}

// AddDeclareTransaction admits a Declare transaction, per spec.md §4.6's
// common prechecks (FeeZero) plus the Declare-specific
// already-exists-with-a-different-hash check (spec.md §4.1).
func (p *TxPipeline) AddDeclareTransaction(tx *core.DeclareTransaction, class core.Class) (*AddResult, error) {
	if tx.MaxFee.IsZero() {
		return nil, core.ErrFeeZero
	}

	hash, err := core.TransactionHash(tx, p.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "computing declare transaction hash")
	}
	tx.SetHash(hash)

	if existing, declErr := p.chain.Layered.Pending.Class(tx.ClassHash); declErr == nil && !core.ClassesEqual(existing.Class, class) {
		return nil, core.ErrClassHashCollision
	}

	p.executeAndIndex(tx, hash, func(state *core.StateStore) *vm.ExecError {
		if !state.IsDeclared(tx.ClassHash) {
			if declErr := state.Declare(tx.ClassHash, class, tx.CompiledClassHash, p.builder.Pending().Number); declErr != nil {
				return &vm.ExecError{Kind: vm.KindExecutionFailure, Message: declErr.Error()}
			}
		}
		return nil
	})

	return &AddResult{TransactionHash: hash}, nil
}

// AddDeployAccountTransaction admits a DeployAccount transaction, per
// spec.md §4.6: FeeZero precheck, UndeclaredClass precheck against
// pending, then snapshot/execute/commit-or-restore. The contract address
// is derived with deployer=0 and the client-supplied salt (spec.md §9,
// Open Question (a), resolved in SPEC_FULL.md).
func (p *TxPipeline) AddDeployAccountTransaction(tx *core.DeployAccountTransaction) (*AddResult, error) {
	if tx.MaxFee.IsZero() {
		return nil, core.ErrFeeZero
	}
	if !p.chain.Layered.Pending.IsDeclared(tx.ClassHash) {
		return nil, core.ErrUndeclaredClass
	}

	address := core.ComputeAddress(new(felt.Felt), tx.ContractAddressSalt, tx.ClassHash, tx.ConstructorCalldata)
	tx.ContractAddress = address

	hash, err := core.TransactionHash(tx, p.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "computing deploy_account transaction hash")
	}
	tx.SetHash(hash)

	p.executeAndIndex(tx, hash, nil)

	return &AddResult{TransactionHash: hash, ContractAddress: address}, nil
}

// AddInvokeTransaction admits an Invoke transaction (v0 or v1), per
// spec.md §4.6's FeeZero precheck plus snapshot/execute/commit-or-restore.
func (p *TxPipeline) AddInvokeTransaction(tx *core.InvokeTransaction) (*AddResult, error) {
	if tx.MaxFee.IsZero() {
		return nil, core.ErrFeeZero
	}

	hash, err := core.TransactionHash(tx, p.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "computing invoke transaction hash")
	}
	tx.SetHash(hash)

	p.executeAndIndex(tx, hash, nil)

	return &AddResult{TransactionHash: hash}, nil
}

// AddL1HandlerTransaction admits an L1Handler "transaction" resulting
// from a simulated L1-to-L2 message; it has no fee and is never rejected
// for InsufficientBalance, only for ExecutionFailure.
func (p *TxPipeline) AddL1HandlerTransaction(tx *core.L1HandlerTransaction) (*AddResult, error) {
	hash, err := core.TransactionHash(tx, p.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "computing l1_handler transaction hash")
	}
	tx.SetHash(hash)

	p.executeAndIndex(tx, hash, nil)

	return &AddResult{TransactionHash: hash}, nil
}

// executeAndIndex runs the common snapshot/execute/commit-or-restore
// sequence from spec.md §4.6. preExecute (if non-nil) runs against
// pending state immediately before vm.Executor.Execute, inside the same
// snapshot, so its effects are rolled back together with execution's on
// failure (used by AddDeclareTransaction to register the class).
func (p *TxPipeline) executeAndIndex(tx core.Transaction, hash *felt.Felt, preExecute func(*core.StateStore) *vm.ExecError) {
	snap := p.chain.Layered.SnapshotPending()

	// index records a new hash in insertion order and overwrites the
	// record of a hash that is already indexed (a replayed transaction).
	index := func(stored *core.StoredTransaction) {
		if _, ok := p.chain.Transactions.Get(*hash); ok {
			p.chain.Transactions.Set(*hash, stored)
			return
		}
		_ = p.chain.Transactions.Insert(*hash, stored)
	}

	var execErr *vm.ExecError
	var info *vm.ExecInfo
	if preExecute != nil {
		execErr = preExecute(p.chain.Layered.Pending)
	}
	if execErr == nil {
		info, execErr = p.executor.Execute(tx, p.chain.Layered.Pending, p.blockContext())
	}

	if execErr == nil {
		p.builder.AppendTransaction(hash)
		index(&core.StoredTransaction{
			Transaction:  tx,
			Type:         tx.Type(),
			Status:       core.AcceptedOnL2,
			Events:       info.Events,
			MessagesSent: info.Messages,
			ActualFee:    info.ActualFee,
			Resources:    info.Resources,
		})
		return
	}

	p.chain.Layered.RestorePending(snap)
	index(&core.StoredTransaction{
		Transaction:    tx,
		Type:           tx.Type(),
		Status:         core.Rejected,
		ExecutionError: execErr.Error(),
	})
}
