package rpc

import (
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/jsonrpc"
	"github.com/starknet-devnet/devnetgo/vm"
)

// FeeEstimate is the result of estimating one transaction's fee.
type FeeEstimate struct {
	GasConsumed *core.ExecutionResources `json:"gas_consumed,omitempty"`
	OverallFee  string                   `json:"overall_fee"`
}

// EstimateFee simulates each broadcast transaction against a throwaway
// snapshot of pending state and reports the fee vm.Executor would have
// charged. Unlike AddInvokeTransaction/AddDeclareTransaction/
// AddDeployAccountTransaction, it never mutates pending state or indexes
// a transaction — the snapshot is always discarded, whatever the outcome.
func (h *Handler) EstimateFee(broadcasted []BroadcastedTransaction, id BlockID) ([]FeeEstimate, *jsonrpc.Error) {
	if _, _, rpcErr := h.stateByBlockID(&id); rpcErr != nil {
		return nil, rpcErr
	}

	estimates := make([]FeeEstimate, 0, len(broadcasted))
	for _, b := range broadcasted {
		tx, err := b.toCoreTransaction()
		if err != nil {
			return nil, ErrInternal.CloneWithData(err.Error())
		}

		snapshot := h.bcReader.Layered.Pending.Snapshot()
		info, execErr := h.simulate(tx, snapshot)
		if execErr != nil {
			return nil, makeContractError(execErr)
		}

		estimates = append(estimates, FeeEstimate{
			GasConsumed: info.Resources,
			OverallFee:  info.ActualFee.String(),
		})
	}
	return estimates, nil
}

func (h *Handler) simulate(tx core.Transaction, snapshot *core.StateStore) (*vm.ExecInfo, *vm.ExecError) {
	pending := h.builder.Pending()
	ctx := &vm.BlockContext{
		Number:           pending.Number,
		Timestamp:        pending.Timestamp,
		SequencerAddress: pending.SequencerAddress,
		ChainID:          h.bcReader.Network().L2ChainIDFelt(),
	}
	executor := vm.NewSimpleExecutor()
	return executor.Execute(tx, snapshot, ctx)
}
