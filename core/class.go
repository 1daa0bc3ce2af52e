package core

import (
	"bytes"
	"encoding/json"

	"github.com/Masterminds/semver/v3"

	"github.com/starknet-devnet/devnetgo/core/felt"
)

// ClassHash identifies a contract class's source form; CompiledClassHash
// identifies its compiled form. Cairo-0 classes collapse both into the
// same value (SPEC_FULL.md §3).
type (
	ClassHash         = felt.Felt
	CompiledClassHash = felt.Felt
)

// EntryPoint is a Cairo-0 entry point: a program counter offset tagged
// with the selector that reaches it.
type EntryPoint struct {
	Offset   *felt.Felt
	Selector *felt.Felt
}

// SierraEntryPoint is a Cairo-1 entry point: a Sierra function index
// tagged with its selector.
type SierraEntryPoint struct {
	Index    uint64
	Selector *felt.Felt
}

// Class is the opaque interface both ContractClass variants satisfy. The
// engine never interprets program bytes itself — only vm.Executor does —
// so Class exists purely to let StateStore store either variant behind
// one map.
type Class interface {
	isClass()
}

// Cairo0Class is the source form of a pre-Cairo-1 ("Cairo 0") contract
// class: a JSON-encoded program plus its entry point tables.
type Cairo0Class struct {
	Abi         json.RawMessage
	Program     json.RawMessage
	Constructors []EntryPoint
	Externals    []EntryPoint
	L1Handlers   []EntryPoint
}

func (*Cairo0Class) isClass() {}

// Cairo1EntryPoints groups a Cairo-1 class's entry points by kind.
type Cairo1EntryPoints struct {
	Constructor []SierraEntryPoint
	External    []SierraEntryPoint
	L1Handler   []SierraEntryPoint
}

// Cairo1Class is the source form of a Cairo-1 contract class: a Sierra
// program plus the compiled class hash of its CASM lowering.
type Cairo1Class struct {
	Abi               json.RawMessage
	Program           []*felt.Felt
	EntryPoints       Cairo1EntryPoints
	SemanticVersion   string
	CompiledClassHash *felt.Felt
}

func (*Cairo1Class) isClass() {}

// ParsedVersion parses SemanticVersion with Masterminds/semver, returning
// an error for malformed contract_class_version fields rather than
// silently accepting garbage.
func (c *Cairo1Class) ParsedVersion() (*semver.Version, error) {
	return semver.NewVersion(c.SemanticVersion)
}

// ClassesEqual reports whether a and b describe the same class body. Class
// is an interface over *Cairo0Class/*Cairo1Class pointers, so a plain == or
// != compares pointer identity, not content — two independently decoded
// copies of the identical class (e.g. the same contract_class payload
// unmarshaled twice) would always compare unequal. Declare (spec.md §4.1)
// must treat a redeclare of the same class as a no-op regardless of which
// *Cairo0Class/*Cairo1Class value decoded it, so this compares the
// marshaled content instead.
func ClassesEqual(a, b Class) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	aBytes, aErr := json.Marshal(a)
	bBytes, bErr := json.Marshal(b)
	if aErr != nil || bErr != nil {
		return false
	}
	return bytes.Equal(aBytes, bBytes)
}

// DeclaredClass pairs a Class with the block number it was first declared
// at (juno's own core.DeclaredClass shape, cemabi33-juno/core/state.go),
// used to decide visibility of a class at a historical BlockID.
type DeclaredClass struct {
	At    uint64
	Class Class

	// CompiledHash is the compiled_class_hash supplied at declare time
	// (set by Declare-v2). Cairo-0 and Declare-v1 classes leave this nil.
	// It is stored as given and is independent of a Cairo1Class's own
	// CompiledClassHash field.
	CompiledHash *felt.Felt
}
