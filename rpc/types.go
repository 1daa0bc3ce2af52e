package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// BlockID is the wire form of spec.md's BlockID: "latest", "pending", or
// an object carrying block_hash or block_number, matching the shape the
// starknet-specs openrpc schema defines (juno's own rpc.BlockID, not
// retrieved in the example pack, follows the identical JSON contract).
type BlockID struct {
	Pending bool
	Latest  bool
	Number  uint64
	Hash    *felt.Felt
}

func (b *BlockID) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		switch tag {
		case "latest":
			*b = BlockID{Latest: true}
			return nil
		case "pending":
			*b = BlockID{Pending: true}
			return nil
		default:
			return fmt.Errorf("unknown block tag %q", tag)
		}
	}

	var obj struct {
		BlockHash   *felt.Felt `json:"block_hash"`
		BlockNumber *uint64    `json:"block_number"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid block_id: %w", err)
	}
	if obj.BlockHash != nil {
		*b = BlockID{Hash: obj.BlockHash}
		return nil
	}
	if obj.BlockNumber != nil {
		*b = BlockID{Number: *obj.BlockNumber}
		return nil
	}
	return fmt.Errorf("block_id must carry block_hash or block_number")
}

// core translates the wire BlockID into the core package's BlockID.
func (b *BlockID) core() *core.BlockID {
	return &core.BlockID{Pending: b.Pending, Latest: b.Latest, Number: b.Number, Hash: b.Hash}
}

// EntryPoint is the RPC-facing projection of core.EntryPoint /
// core.SierraEntryPoint, covering both Cairo0 (Offset) and Cairo1 (Index)
// shapes in one struct the way juno's own rpc.EntryPoint does (consumed
// directly in the copied rpc/chain.go's Class method).
type EntryPoint struct {
	Offset   *felt.Felt `json:"offset,omitempty"`
	Index    *uint64    `json:"index,omitempty"`
	Selector *felt.Felt `json:"selector"`
}

// EntryPoints groups the three entry-point kinds every Class carries.
type EntryPoints struct {
	Constructor []EntryPoint `json:"CONSTRUCTOR"`
	External    []EntryPoint `json:"EXTERNAL"`
	L1Handler   []EntryPoint `json:"L1_HANDLER"`
}

// Class is the RPC-facing projection of core.Class (both Cairo0 and
// Cairo1), matching juno's rpc.Class shape used verbatim in the copied
// rpc/chain.go's Class/ClassAt methods.
type Class struct {
	Abi                  json.RawMessage `json:"abi,omitempty"`
	Program              json.RawMessage `json:"program,omitempty"`
	SierraProgram        []*felt.Felt    `json:"sierra_program,omitempty"`
	ContractClassVersion string          `json:"contract_class_version,omitempty"`
	EntryPoints          EntryPoints     `json:"entry_points_by_type"`
}

// FunctionCall parameterises starknet_call.
type FunctionCall struct {
	ContractAddress    felt.Felt   `json:"contract_address"`
	EntryPointSelector felt.Felt   `json:"entry_point_selector"`
	Calldata           []*felt.Felt `json:"calldata"`
}
