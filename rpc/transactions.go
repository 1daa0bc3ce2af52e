package rpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/jsonrpc"
)

// TxnType tags BroadcastedTransaction's wire variant.
type TxnType string

const (
	TxnDeclare      TxnType = "DECLARE"
	TxnDeployAccount TxnType = "DEPLOY_ACCOUNT"
	TxnInvoke       TxnType = "INVOKE"
	TxnL1Handler    TxnType = "L1_HANDLER"
)

// BroadcastedTransaction is the wire form of a user-submitted transaction
// for starknet_addDeclareTransaction/addDeployAccountTransaction/
// addInvokeTransaction/estimateFee, covering the union of fields any
// variant needs — the same flattened-union approach juno's own
// rpc.BroadcastedTransaction takes for its JSON-RPC surface.
type BroadcastedTransaction struct {
	Type                TxnType         `json:"type"`
	Version             string          `json:"version"`
	MaxFee              *felt.Felt      `json:"max_fee"`
	Signature           []*felt.Felt    `json:"signature"`
	Nonce               *felt.Felt      `json:"nonce"`
	SenderAddress       *felt.Felt      `json:"sender_address"`
	ContractAddress     *felt.Felt      `json:"contract_address"`
	EntryPointSelector  *felt.Felt      `json:"entry_point_selector"`
	CallData            []*felt.Felt    `json:"calldata"`
	ClassHash           *felt.Felt      `json:"class_hash"`
	CompiledClassHash   *felt.Felt      `json:"compiled_class_hash"`
	ContractAddressSalt *felt.Felt      `json:"contract_address_salt"`
	ConstructorCalldata []*felt.Felt    `json:"constructor_calldata"`
	ContractClass       json.RawMessage `json:"contract_class"`
}

func versionType(v string, v0, v1, v2 core.TransactionType) (core.TransactionType, error) {
	switch v {
	case "0x0", "0":
		return v0, nil
	case "0x1", "1":
		return v1, nil
	case "0x2", "2":
		return v2, nil
	default:
		return 0, fmt.Errorf("unsupported version %q", v)
	}
}

// toCoreTransaction adapts the wire form into the internal
// core.Transaction union, leaving Hash unset — callers (TxPipeline) fill
// it in.
func (b *BroadcastedTransaction) toCoreTransaction() (core.Transaction, error) {
	switch b.Type {
	case TxnDeclare:
		version, err := versionType(b.Version, core.TxDeclareV0, core.TxDeclareV1, core.TxDeclareV2)
		if err != nil {
			return nil, err
		}
		return &core.DeclareTransaction{
			Version:           version,
			ClassHash:         b.ClassHash,
			CompiledClassHash: b.CompiledClassHash,
			SenderAddress:     b.SenderAddress,
			MaxFee:            nilToZero(b.MaxFee),
			Signature_:        b.Signature,
			Nonce:             nilToZero(b.Nonce),
		}, nil
	case TxnDeployAccount:
		return &core.DeployAccountTransaction{
			ClassHash:           b.ClassHash,
			ContractAddressSalt: b.ContractAddressSalt,
			ConstructorCalldata: b.ConstructorCalldata,
			MaxFee:              nilToZero(b.MaxFee),
			Signature_:          b.Signature,
			Nonce:               nilToZero(b.Nonce),
		}, nil
	case TxnInvoke:
		switch b.Version {
		case "0x0", "0":
			return &core.InvokeTransaction{
				Version:            core.TxInvokeV0,
				ContractAddress:    b.ContractAddress,
				EntryPointSelector: b.EntryPointSelector,
				CallData:           b.CallData,
				MaxFee:             nilToZero(b.MaxFee),
				Signature_:         b.Signature,
			}, nil
		default:
			return &core.InvokeTransaction{
				Version:       core.TxInvokeV1,
				SenderAddress: b.SenderAddress,
				CallData:      b.CallData,
				MaxFee:        nilToZero(b.MaxFee),
				Signature_:    b.Signature,
				Nonce:         nilToZero(b.Nonce),
			}, nil
		}
	default:
		return nil, fmt.Errorf("unsupported broadcast transaction type %q", b.Type)
	}
}

func nilToZero(f *felt.Felt) *felt.Felt {
	if f == nil {
		return new(felt.Felt)
	}
	return f
}

// AddDeclareTransactionResult is returned by starknet_addDeclareTransaction.
type AddDeclareTransactionResult struct {
	TransactionHash *felt.Felt `json:"transaction_hash"`
	ClassHash       *felt.Felt `json:"class_hash"`
}

// AddDeclareTransaction admits a Declare transaction (spec.md §4.6). The
// contract_class payload is decoded as a Cairo-0 class; Cairo-1/Sierra
// declare is out of this devnet's decoding scope (SPEC_FULL.md only wires
// the Cairo-1 account class hash as a fixed predeploy constant, not
// arbitrary user-submitted Sierra declares).
func (h *Handler) AddDeclareTransaction(broadcasted BroadcastedTransaction) (*AddDeclareTransactionResult, *jsonrpc.Error) { //nolint:gocritic
	tx, err := broadcasted.toCoreTransaction()
	if err != nil {
		return nil, ErrInternal.CloneWithData(err.Error())
	}
	declareTx, ok := tx.(*core.DeclareTransaction)
	if !ok {
		return nil, ErrInternal.CloneWithData("not a declare transaction")
	}

	var class core.Cairo0Class
	if len(broadcasted.ContractClass) > 0 {
		if jsonErr := json.Unmarshal(broadcasted.ContractClass, &class); jsonErr != nil {
			return nil, ErrInternal.CloneWithData(jsonErr.Error())
		}
	}

	result, pipelineErr := h.pipeline.AddDeclareTransaction(declareTx, &class)
	if pipelineErr != nil {
		return nil, translatePipelineError(pipelineErr)
	}
	return &AddDeclareTransactionResult{TransactionHash: result.TransactionHash, ClassHash: declareTx.ClassHash}, nil
}

// AddDeployAccountTransactionResult is returned by
// starknet_addDeployAccountTransaction.
type AddDeployAccountTransactionResult struct {
	TransactionHash *felt.Felt `json:"transaction_hash"`
	ContractAddress *felt.Felt `json:"contract_address"`
}

// AddDeployAccountTransaction admits a DeployAccount transaction.
func (h *Handler) AddDeployAccountTransaction(broadcasted BroadcastedTransaction) (*AddDeployAccountTransactionResult, *jsonrpc.Error) { //nolint:gocritic
	tx, err := broadcasted.toCoreTransaction()
	if err != nil {
		return nil, ErrInternal.CloneWithData(err.Error())
	}
	deployTx, ok := tx.(*core.DeployAccountTransaction)
	if !ok {
		return nil, ErrInternal.CloneWithData("not a deploy_account transaction")
	}

	result, pipelineErr := h.pipeline.AddDeployAccountTransaction(deployTx)
	if pipelineErr != nil {
		return nil, translatePipelineError(pipelineErr)
	}
	return &AddDeployAccountTransactionResult{TransactionHash: result.TransactionHash, ContractAddress: result.ContractAddress}, nil
}

// AddInvokeTransactionResult is returned by starknet_addInvokeTransaction.
type AddInvokeTransactionResult struct {
	TransactionHash *felt.Felt `json:"transaction_hash"`
}

// AddInvokeTransaction admits an Invoke transaction (v0 or v1).
func (h *Handler) AddInvokeTransaction(broadcasted BroadcastedTransaction) (*AddInvokeTransactionResult, *jsonrpc.Error) { //nolint:gocritic
	tx, err := broadcasted.toCoreTransaction()
	if err != nil {
		return nil, ErrInternal.CloneWithData(err.Error())
	}
	invokeTx, ok := tx.(*core.InvokeTransaction)
	if !ok {
		return nil, ErrInternal.CloneWithData("not an invoke transaction")
	}

	result, pipelineErr := h.pipeline.AddInvokeTransaction(invokeTx)
	if pipelineErr != nil {
		return nil, translatePipelineError(pipelineErr)
	}
	return &AddInvokeTransactionResult{TransactionHash: result.TransactionHash}, nil
}

func translatePipelineError(err error) *jsonrpc.Error {
	switch {
	case errors.Is(err, core.ErrFeeZero):
		return ErrFeeZero
	case errors.Is(err, core.ErrUndeclaredClass):
		return ErrUndeclaredClass
	case errors.Is(err, core.ErrClassHashCollision):
		return ErrClassAlreadyDeclared
	default:
		return ErrInternal.CloneWithData(err.Error())
	}
}

// TransactionReceipt is the RPC-facing projection of core.StoredTransaction.
type TransactionReceipt struct {
	TransactionHash *felt.Felt        `json:"transaction_hash"`
	Type            string            `json:"type"`
	Status          string            `json:"finality_status"`
	ExecutionError  string            `json:"revert_reason,omitempty"`
	ActualFee       *felt.Felt        `json:"actual_fee"`
	BlockHash       *felt.Felt        `json:"block_hash,omitempty"`
	BlockNumber     uint64            `json:"block_number,omitempty"`
	MessagesSent    []*core.L2ToL1Message `json:"messages_sent"`
	Events          []*core.Event     `json:"events"`
}

// GetTransactionReceipt returns the receipt for hash.
func (h *Handler) GetTransactionReceipt(hash felt.Felt) (*TransactionReceipt, *jsonrpc.Error) {
	stored, err := h.bcReader.GetTransaction(&hash)
	if err != nil {
		return nil, ErrTxnHashNotFound
	}
	return &TransactionReceipt{
		TransactionHash: &hash,
		Type:            stored.Type.String(),
		Status:          stored.Status.String(),
		ExecutionError:  stored.ExecutionError,
		ActualFee:       stored.ActualFee,
		BlockHash:       stored.BlockHash,
		BlockNumber:     stored.BlockNumber,
		MessagesSent:    stored.MessagesSent,
		Events:          stored.Events,
	}, nil
}

// GetTransactionByHash returns the transaction as originally broadcast.
func (h *Handler) GetTransactionByHash(hash felt.Felt) (core.Transaction, *jsonrpc.Error) {
	stored, err := h.bcReader.GetTransaction(&hash)
	if err != nil {
		return nil, ErrTxnHashNotFound
	}
	return stored.Transaction, nil
}

// BlockHeader is the RPC-facing projection of core.Block, omitting
// transaction bodies (BlockWithTxs is out of scope; callers fetch
// transactions individually via GetTransactionByHash, matching
// SPEC_FULL.md §4.8's QueryAPI scope).
type BlockHeader struct {
	BlockHash        *felt.Felt   `json:"block_hash"`
	ParentHash       *felt.Felt   `json:"parent_hash"`
	BlockNumber      uint64       `json:"block_number"`
	NewRoot          *felt.Felt   `json:"new_root"`
	Timestamp        int64        `json:"timestamp"`
	SequencerAddress *felt.Felt   `json:"sequencer_address"`
	TransactionHashes []*felt.Felt `json:"transactions"`
}

// BlockWithTxHashes returns the block header plus transaction hashes for
// the resolved BlockID.
func (h *Handler) BlockWithTxHashes(id BlockID) (*BlockHeader, *jsonrpc.Error) {
	blk, rpcErr := h.blockByID(&id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return &BlockHeader{
		BlockHash:         blk.Hash,
		ParentHash:        blk.ParentHash,
		BlockNumber:       blk.Number,
		NewRoot:           blk.StateRoot,
		Timestamp:         blk.Timestamp,
		SequencerAddress:  blk.SequencerAddress,
		TransactionHashes: blk.TransactionHashes,
	}, nil
}

// BlockNumber returns the height of the latest sealed block.
func (h *Handler) BlockNumber() (uint64, *jsonrpc.Error) {
	blk, rpcErr := h.blockByID(&BlockID{Latest: true})
	if rpcErr != nil {
		return 0, rpcErr
	}
	return blk.Number, nil
}
