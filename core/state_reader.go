package core

import "github.com/starknet-devnet/devnetgo/core/felt"

// StateReader is the read-only contract every state view (the live
// Pending/Committed stores, and historical snapshots) satisfies, named
// and shaped exactly after juno's own core.StateReader interface
// (cemabi33-juno/core/state.go) so the copied rpc/chain.go's
// stateReader.ContractNonce/.ContractStorage/.ContractClassHash calls and
// state.Class(...) work unmodified against *StateStore.
type StateReader interface {
	ContractClassHash(addr *felt.Felt) (*felt.Felt, error)
	ContractNonce(addr *felt.Felt) (*felt.Felt, error)
	ContractStorage(addr, key *felt.Felt) (*felt.Felt, error)
	Class(classHash *felt.Felt) (*DeclaredClass, error)
}

var _ StateReader = (*StateStore)(nil)

// ContractClassHash implements StateReader.
func (s *StateStore) ContractClassHash(addr *felt.Felt) (*felt.Felt, error) {
	return s.ClassHashAt(addr)
}

// ContractNonce implements StateReader. Per SPEC_FULL.md §4.8, reading
// the nonce of an undeployed address is ErrContractNotFound, not zero.
func (s *StateStore) ContractNonce(addr *felt.Felt) (*felt.Felt, error) {
	if !s.IsDeployed(addr) {
		return nil, ErrContractNotFound
	}
	return s.GetNonce(addr), nil
}

// ContractStorage implements StateReader. Per SPEC_FULL.md §4.8, storage
// is only addressable on deployed contracts; unset keys on a deployed
// contract read as zero.
func (s *StateStore) ContractStorage(addr, key *felt.Felt) (*felt.Felt, error) {
	if !s.IsDeployed(addr) {
		return nil, ErrContractNotFound
	}
	return s.GetStorage(StorageKey{Address: *addr, Key: *key}), nil
}
