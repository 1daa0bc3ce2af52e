package rpc

import (
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/jsonrpc"
	"github.com/starknet-devnet/devnetgo/utils"
	"github.com/starknet-devnet/devnetgo/vm"
)

// ChainID returns the chain ID of the currently configured network.
func (h *Handler) ChainID() (*felt.Felt, *jsonrpc.Error) {
	return h.bcReader.Network().L2ChainIDFelt(), nil
}

// Nonce returns the nonce associated with the given address at the given
// block.
func (h *Handler) Nonce(id BlockID, address felt.Felt) (*felt.Felt, *jsonrpc.Error) {
	stateReader, stateCloser, rpcErr := h.stateByBlockID(&id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer h.callAndLogErr(stateCloser, "error closing state reader in getNonce")

	nonce, err := stateReader.ContractNonce(&address)
	if err != nil {
		return nil, ErrContractNotFound
	}
	return nonce, nil
}

// StorageAt gets the value of the storage at the given address and key.
func (h *Handler) StorageAt(address, key felt.Felt, id BlockID) (*felt.Felt, *jsonrpc.Error) {
	stateReader, stateCloser, rpcErr := h.stateByBlockID(&id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer h.callAndLogErr(stateCloser, "error closing state reader in getStorageAt")

	value, err := stateReader.ContractStorage(&address, &key)
	if err != nil {
		return nil, ErrContractNotFound
	}
	return value, nil
}

// ClassHashAt gets the class hash for the contract deployed at the given
// address at the given block.
func (h *Handler) ClassHashAt(id BlockID, address felt.Felt) (*felt.Felt, *jsonrpc.Error) {
	stateReader, stateCloser, rpcErr := h.stateByBlockID(&id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer h.callAndLogErr(stateCloser, "error closing state reader in getClassHashAt")

	classHash, err := stateReader.ContractClassHash(&address)
	if err != nil {
		return nil, ErrContractNotFound
	}
	return classHash, nil
}

// Class gets the contract class definition associated with the given
// hash in the given block.
func (h *Handler) Class(id BlockID, classHash felt.Felt) (*Class, *jsonrpc.Error) {
	state, stateCloser, rpcErr := h.stateByBlockID(&id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer h.callAndLogErr(stateCloser, "error closing state reader in getClass")

	declared, err := state.Class(&classHash)
	if err != nil {
		return nil, ErrClassHashNotFound
	}

	switch c := declared.Class.(type) {
	case *core.Cairo0Class:
		adapt := func(ep core.EntryPoint) EntryPoint {
			return EntryPoint{Offset: ep.Offset, Selector: ep.Selector}
		}
		return &Class{
			Abi:     c.Abi,
			Program: c.Program,
			EntryPoints: EntryPoints{
				Constructor: utils.Map(c.Constructors, adapt),
				External:    utils.Map(c.Externals, adapt),
				L1Handler:   utils.Map(c.L1Handlers, adapt),
			},
		}, nil
	case *core.Cairo1Class:
		adapt := func(ep core.SierraEntryPoint) EntryPoint {
			idx := ep.Index
			return EntryPoint{Index: &idx, Selector: ep.Selector}
		}
		return &Class{
			Abi:                  c.Abi,
			SierraProgram:        c.Program,
			ContractClassVersion: c.SemanticVersion,
			EntryPoints: EntryPoints{
				Constructor: utils.Map(c.EntryPoints.Constructor, adapt),
				External:    utils.Map(c.EntryPoints.External, adapt),
				L1Handler:   utils.Map(c.EntryPoints.L1Handler, adapt),
			},
		}, nil
	default:
		return nil, ErrClassHashNotFound
	}
}

// ClassAt gets the contract class definition instantiated at the given
// address in the given block.
func (h *Handler) ClassAt(id BlockID, address felt.Felt) (*Class, *jsonrpc.Error) {
	classHash, err := h.ClassHashAt(id, address)
	if err != nil {
		return nil, err
	}
	return h.Class(id, *classHash)
}

// Call performs a read-only starknet_call against state at the given
// block, dispatching into vm.Call — the VM's read-only entry point,
// mirroring juno's h.vm.Call usage in the copied rpc/chain.go.
func (h *Handler) Call(funcCall FunctionCall, id BlockID) ([]*felt.Felt, *jsonrpc.Error) { //nolint:gocritic
	state, closer, rpcErr := h.stateByBlockID(&id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer h.callAndLogErr(closer, "failed to close state in starknet_call")

	store, ok := state.(*core.StateStore)
	if !ok {
		return nil, ErrInternal.CloneWithData("state view does not support read-only calls")
	}

	classHash, err := state.ContractClassHash(&funcCall.ContractAddress)
	if err != nil {
		return nil, ErrContractNotFound
	}

	res, err := vm.Call(&vm.CallInfo{
		ContractAddress: &funcCall.ContractAddress,
		Selector:        &funcCall.EntryPointSelector,
		Calldata:        funcCall.Calldata,
		ClassHash:       classHash,
	}, &vm.BlockInfo{}, store)
	if err != nil {
		return nil, makeContractError(err)
	}
	return res, nil
}
