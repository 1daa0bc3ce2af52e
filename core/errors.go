package core

import "errors"

// Sentinel errors for the state/class/address invariants in SPEC_FULL.md
// §3–§4.1. These are deliberately distinguishable with errors.Is rather
// than wrapped with stack context: they signal protocol-level conditions
// the pipeline and rpc layers branch on, not internal plumbing failures.
var (
	// ErrClassHashCollision indicates a class hash was redeclared with a
	// different class body — a hash-function bug, never a normal user
	// error.
	ErrClassHashCollision = errors.New("class hash collision")

	// ErrAddressOccupied indicates a deploy to an address that is already
	// mapped to a class hash.
	ErrAddressOccupied = errors.New("contract address already deployed")

	// ErrUndeclaredClass indicates a class hash with no registered
	// ContractClass.
	ErrUndeclaredClass = errors.New("class hash is not declared")

	// ErrContractNotFound indicates an address with no deployed class.
	ErrContractNotFound = errors.New("contract not found")

	// ErrClassHashNotFound is ErrUndeclaredClass phrased for the read path.
	ErrClassHashNotFound = errors.New("class hash not found")

	// ErrDuplicateHash indicates HashIndex.Insert was called twice with
	// the same key — never legitimate for a cryptographic hash in-range.
	ErrDuplicateHash = errors.New("duplicate hash")

	// ErrBlockNotFound indicates a BlockID that resolves to no known
	// height, hash, or view.
	ErrBlockNotFound = errors.New("block not found")

	// ErrTransactionNotFound indicates an unknown transaction hash.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrFeeZero indicates a transaction with max_fee == 0, rejected by
	// TxPipeline before it ever reaches Executor (SPEC_FULL.md §4.6/§7).
	ErrFeeZero = errors.New("max_fee must be non-zero")
)
