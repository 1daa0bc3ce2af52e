// Package vm is the engine's view of the black-box VM collaborator
// SPEC_FULL.md §4's Executor: a function (tx, &mut state, &ctx) ->
// (ExecInfo, error), documented here as a minimal concrete surface per
// the design note in spec.md §9 ("Implementers substituting a different
// VM must preserve determinism and bit-exact hash derivation" — which
// this package does not touch; it only decides execution semantics, not
// hashing). Its shape (CallInfo/BlockInfo/Call) is carried over from
// juno's own vm package as used in the copied rpc/chain.go and
// rpc/estimate_fee.go.
package vm

import (
	"fmt"

	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// BlockContext is the per-block read-only parameter set handed to the
// executor, per the GLOSSARY entry in spec.md.
type BlockContext struct {
	Number           uint64
	Timestamp        int64
	SequencerAddress *felt.Felt
	GasPrice         *felt.Felt
	FeeTokenAddress  *felt.Felt
	ChainID          *felt.Felt
}

// ExecInfo is the successful outcome of executing a transaction.
type ExecInfo struct {
	Events    []*core.Event
	Messages  []*core.L2ToL1Message
	ActualFee *felt.Felt
	Resources *core.ExecutionResources
}

// Kind enumerates the execution-level error taxonomy from SPEC_FULL.md
// §7 that produces a Rejected StoredTransaction rather than a pipeline
// error.
type Kind string

const (
	KindInvalidNonce        Kind = "INVALID_NONCE"
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindAddressOccupied     Kind = "ADDRESS_OCCUPIED"
	KindExecutionFailure    Kind = "EXECUTION_FAILURE"
)

// ExecError is a structured execution error: valid admission, failed
// execution, per SPEC_FULL.md §7.
type ExecError struct {
	Kind    Kind
	Message string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Executor executes one transaction against mutable state under a block
// context, per SPEC_FULL.md §4.6.
type Executor interface {
	Execute(tx core.Transaction, state *core.StateStore, ctx *BlockContext) (*ExecInfo, *ExecError)
}

// CallInfo parameterises a read-only starknet_call, mirroring juno's own
// vm.CallInfo (rpc/chain.go).
type CallInfo struct {
	ContractAddress *felt.Felt
	Selector        *felt.Felt
	Calldata        []*felt.Felt
	ClassHash       *felt.Felt
}

// BlockInfo mirrors juno's vm.BlockInfo.
type BlockInfo struct {
	Header                *core.Block
	BlockHashToBeRevealed *felt.Felt
}

const (
	// balanceVar, publicKeyVar and demoBalanceVar are this engine's own built-in
	// storage variable names — see vm/selector.go's doc comment on why
	// bit-exactness isn't required here.
	balanceVar     = "ERC20_balances"
	publicKeyVar   = "Account_public_key"
	demoBalanceVar = "balance"

	increaseBalanceSelectorName = "increase_balance"
	getBalanceSelectorName      = "get_balance"
)

// SimpleExecutor is the default, minimal Executor implementation this
// devnet ships: no Cairo bytecode interpretation, just enough built-in
// entry-point semantics (ERC20 fee debits, account construction, a demo
// "increase_balance"/"get_balance" contract) to drive TxPipeline and
// satisfy SPEC_FULL.md §8's scenarios. A real deployment would substitute
// an actual Cairo VM behind the same Executor interface.
type SimpleExecutor struct{}

func NewSimpleExecutor() *SimpleExecutor { return &SimpleExecutor{} }

func (e *SimpleExecutor) Execute(tx core.Transaction, state *core.StateStore, ctx *BlockContext) (*ExecInfo, *ExecError) {
	switch t := tx.(type) {
	case *core.DeclareTransaction:
		return e.executeDeclare(t, state, ctx)
	case *core.DeployAccountTransaction:
		return e.executeDeployAccount(t, state, ctx)
	case *core.InvokeTransaction:
		return e.executeInvoke(t, state, ctx)
	case *core.L1HandlerTransaction:
		return e.executeL1Handler(t, state)
	default:
		return nil, &ExecError{Kind: KindExecutionFailure, Message: fmt.Sprintf("unsupported transaction type %T", tx)}
	}
}

func (e *SimpleExecutor) checkAndBumpNonce(state *core.StateStore, address, nonce *felt.Felt) *ExecError {
	current := state.GetNonce(address)
	if !current.Equal(nonce) {
		return &ExecError{
			Kind:    KindInvalidNonce,
			Message: fmt.Sprintf("expected nonce %s, got %s", current.String(), nonce.String()),
		}
	}
	state.IncrementNonce(address)
	return nil
}

func (e *SimpleExecutor) chargeFee(state *core.StateStore, payer *felt.Felt, maxFee *felt.Felt) *ExecError {
	balanceKey := core.StorageKey{Address: *payer, Key: *StorageVarAddress(balanceVar, payer)}
	balance := state.GetStorage(balanceKey)
	if balance.Cmp(maxFee) < 0 {
		return &ExecError{
			Kind:    KindInsufficientBalance,
			Message: fmt.Sprintf("balance %s is less than max_fee %s", balance.String(), maxFee.String()),
		}
	}
	remaining := new(felt.Felt).Sub(balance, maxFee)
	state.SetStorage(balanceKey, remaining)
	return nil
}

func (e *SimpleExecutor) executeDeclare(t *core.DeclareTransaction, state *core.StateStore, ctx *BlockContext) (*ExecInfo, *ExecError) {
	if t.Version != core.TxDeclareV0 {
		if execErr := e.checkAndBumpNonce(state, t.SenderAddress, t.Nonce); execErr != nil {
			return nil, execErr
		}
	}
	if t.SenderAddress != nil && state.IsDeployed(t.SenderAddress) {
		if execErr := e.chargeFee(state, t.SenderAddress, t.MaxFee); execErr != nil {
			return nil, execErr
		}
	}
	return &ExecInfo{ActualFee: t.MaxFee, Resources: &core.ExecutionResources{}}, nil
}

func (e *SimpleExecutor) executeDeployAccount(t *core.DeployAccountTransaction, state *core.StateStore, ctx *BlockContext) (*ExecInfo, *ExecError) {
	if execErr := e.checkAndBumpNonce(state, t.ContractAddress, t.Nonce); execErr != nil {
		return nil, execErr
	}

	if execErr := e.chargeFee(state, t.ContractAddress, t.MaxFee); execErr != nil {
		return nil, execErr
	}

	if err := state.Deploy(t.ContractAddress, t.ClassHash); err != nil {
		return nil, &ExecError{Kind: KindAddressOccupied, Message: err.Error()}
	}

	if len(t.ConstructorCalldata) > 0 {
		pubKeyKey := core.StorageKey{Address: *t.ContractAddress, Key: *StorageVarAddress(publicKeyVar)}
		state.SetStorage(pubKeyKey, t.ConstructorCalldata[0])
	}

	return &ExecInfo{ActualFee: t.MaxFee, Resources: &core.ExecutionResources{}}, nil
}

// call is one leg of an __execute__-style multicall: (to, selector,
// calldata...).
type call struct {
	to       *felt.Felt
	selector *felt.Felt
	calldata []*felt.Felt
}

// decodeCalls interprets calldata using the common account __execute__
// calldata convention exercised in original_source's invoke tests:
// [to, selector, len, args...] repeated per call.
func decodeCalls(calldata []*felt.Felt) []call {
	var calls []call
	i := 0
	for i+2 < len(calldata) {
		to := calldata[i]
		selector := calldata[i+1]
		// calldata length is itself a felt; for devnet-scale calls it
		// always fits in an int.
		n := int(lenFeltToInt(calldata[i+2]))
		start := i + 3
		end := start + n
		if end > len(calldata) {
			break
		}
		calls = append(calls, call{to: to, selector: selector, calldata: calldata[start:end]})
		i = end
	}
	return calls
}

func lenFeltToInt(f *felt.Felt) int64 {
	b := f.Bytes()
	v := int64(0)
	for _, x := range b[len(b)-8:] {
		v = v<<8 | int64(x)
	}
	return v
}

func (e *SimpleExecutor) executeInvoke(t *core.InvokeTransaction, state *core.StateStore, ctx *BlockContext) (*ExecInfo, *ExecError) {
	var sender *felt.Felt
	switch t.Version {
	case core.TxInvokeV1:
		sender = t.SenderAddress
		if execErr := e.checkAndBumpNonce(state, sender, t.Nonce); execErr != nil {
			return nil, execErr
		}
	case core.TxInvokeV0:
		sender = t.ContractAddress
	default:
		return nil, &ExecError{Kind: KindExecutionFailure, Message: "unsupported invoke version"}
	}

	if execErr := e.chargeFee(state, sender, t.MaxFee); execErr != nil {
		return nil, execErr
	}

	increaseSelector := Selector(increaseBalanceSelectorName)

	var calls []call
	if t.Version == core.TxInvokeV1 {
		calls = decodeCalls(t.CallData)
	} else {
		calls = []call{{to: t.ContractAddress, selector: t.EntryPointSelector, calldata: t.CallData}}
	}

	events := make([]*core.Event, 0, len(calls))
	for _, c := range calls {
		if c.selector.Equal(increaseSelector) && len(c.calldata) > 0 {
			key := core.StorageKey{Address: *c.to, Key: *StorageVarAddress(demoBalanceVar)}
			current := state.GetStorage(key)
			next := new(felt.Felt).Add(current, c.calldata[0])
			state.SetStorage(key, next)
			events = append(events, &core.Event{From: c.to, Keys: []*felt.Felt{increaseSelector}, Data: []*felt.Felt{c.calldata[0]}})
		}
	}

	return &ExecInfo{ActualFee: t.MaxFee, Events: events, Resources: &core.ExecutionResources{}}, nil
}

func (e *SimpleExecutor) executeL1Handler(t *core.L1HandlerTransaction, state *core.StateStore) (*ExecInfo, *ExecError) {
	increaseSelector := Selector(increaseBalanceSelectorName)
	if t.EntryPointSelector.Equal(increaseSelector) && len(t.CallData) > 0 {
		key := core.StorageKey{Address: *t.ContractAddress, Key: *StorageVarAddress(demoBalanceVar)}
		current := state.GetStorage(key)
		next := new(felt.Felt).Add(current, t.CallData[0])
		state.SetStorage(key, next)
	}
	return &ExecInfo{Resources: &core.ExecutionResources{}}, nil
}

// Call performs a read-only invocation (starknet_call), never mutating
// state, mirroring juno's vm.Call signature shape used in
// rpc/chain.go/rpc/estimate_fee.go.
func Call(info *CallInfo, _ *BlockInfo, state *core.StateStore) ([]*felt.Felt, error) {
	getBalanceSelector := Selector(getBalanceSelectorName)
	balanceOfSelector := Selector("balanceOf")

	switch {
	case info.Selector.Equal(getBalanceSelector):
		key := core.StorageKey{Address: *info.ContractAddress, Key: *StorageVarAddress(demoBalanceVar)}
		return []*felt.Felt{state.GetStorage(key)}, nil
	case info.Selector.Equal(balanceOfSelector) && len(info.Calldata) > 0:
		key := core.StorageKey{Address: *info.Calldata[0], Key: *StorageVarAddress(balanceVar, info.Calldata[0])}
		return []*felt.Felt{state.GetStorage(key)}, nil
	default:
		return nil, fmt.Errorf("unsupported selector %s for read-only call", info.Selector.String())
	}
}
