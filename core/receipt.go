package core

import "github.com/starknet-devnet/devnetgo/core/felt"

// Event, L1ToL2Message, L2ToL1Message and ExecutionResources are carried
// over from the original system's receipt shape (dropped by the spec.md
// distillation, supplemented here from
// other_examples/...core-transaction.go) since StoredTransaction.Events /
// MessagesSent need a concrete representation.
type Event struct {
	From *felt.Felt
	Keys []*felt.Felt
	Data []*felt.Felt
}

type L1ToL2Message struct {
	From     *felt.Felt
	To       *felt.Felt
	Selector *felt.Felt
	Payload  []*felt.Felt
	Nonce    *felt.Felt
}

type L2ToL1Message struct {
	From    *felt.Felt
	To      *felt.Felt
	Payload []*felt.Felt
}

// ExecutionResources counts the VM resources a transaction consumed.
// Populated by vm.Executor, opaque to the engine otherwise.
type ExecutionResources struct {
	Steps       uint64
	MemoryHoles uint64
	Builtins    map[string]uint64
}

// Status is the outcome of transaction admission, per SPEC_FULL.md §3.
type Status int

const (
	AcceptedOnL2 Status = iota
	Rejected
)

func (s Status) String() string {
	if s == AcceptedOnL2 {
		return "ACCEPTED_ON_L2"
	}
	return "REJECTED"
}

// StoredTransaction is the transaction-index record TxPipeline produces
// for every admitted broadcast, accepted or rejected, per
// SPEC_FULL.md §3.
type StoredTransaction struct {
	Transaction Transaction
	Type        TransactionType
	Status      Status

	ExecutionError string

	Events        []*Event
	MessagesSent  []*L2ToL1Message
	ActualFee     *felt.Felt
	Resources     *ExecutionResources

	BlockHash   *felt.Felt
	BlockNumber uint64
	HasBlock    bool
}
