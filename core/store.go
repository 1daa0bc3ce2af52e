package core

import (
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// StorageKey identifies one storage cell: (ContractAddress, felt), per
// SPEC_FULL.md §3.
type StorageKey struct {
	Address felt.Felt
	Key     felt.Felt
}

// StateStore is the in-memory world state: four independent maps
// (address->class_hash, address->nonce, storage, class_hash->declared
// class), per SPEC_FULL.md §4.1. Persistence (juno's trie+db-backed
// State) is out of scope (the engine is memory-resident, SPEC_FULL.md
// §1/§6) so this holds plain Go maps instead of committing into a Merkle
// trie on every write.
type StateStore struct {
	addressToClassHash map[felt.Felt]felt.Felt
	addressToNonce     map[felt.Felt]felt.Felt
	storage            map[StorageKey]felt.Felt
	classes            map[felt.Felt]DeclaredClass
}

// NewStateStore constructs an empty store.
func NewStateStore() *StateStore {
	return &StateStore{
		addressToClassHash: make(map[felt.Felt]felt.Felt),
		addressToNonce:     make(map[felt.Felt]felt.Felt),
		storage:            make(map[StorageKey]felt.Felt),
		classes:            make(map[felt.Felt]DeclaredClass),
	}
}

// Declare registers class under classHash. Idempotent if class is
// identical (compared by content with ClassesEqual; compiledHash is not
// compared, and the first declaration's value is kept); a conflicting
// redeclare is ErrClassHashCollision — per SPEC_FULL.md §4.1
// this indicates a hash-function bug, never normal operation.
func (s *StateStore) Declare(classHash *felt.Felt, class Class, compiledHash *felt.Felt, declaredAt uint64) error {
	if existing, ok := s.classes[*classHash]; ok {
		if ClassesEqual(existing.Class, class) {
			return nil
		}
		return ErrClassHashCollision
	}
	s.classes[*classHash] = DeclaredClass{At: declaredAt, Class: class, CompiledHash: compiledHash}
	return nil
}

// IsDeclared reports whether classHash has a registered class.
func (s *StateStore) IsDeclared(classHash *felt.Felt) bool {
	_, ok := s.classes[*classHash]
	return ok
}

// Class returns the declared class for classHash, or ErrClassHashNotFound.
func (s *StateStore) Class(classHash *felt.Felt) (*DeclaredClass, error) {
	dc, ok := s.classes[*classHash]
	if !ok {
		return nil, ErrClassHashNotFound
	}
	return &dc, nil
}

// Deploy maps address to classHash. Fails ErrAddressOccupied if address
// is already mapped, or ErrUndeclaredClass if classHash has no declared
// class.
func (s *StateStore) Deploy(address, classHash *felt.Felt) error {
	if _, ok := s.addressToClassHash[*address]; ok {
		return ErrAddressOccupied
	}
	if !s.IsDeclared(classHash) {
		return ErrUndeclaredClass
	}
	s.addressToClassHash[*address] = *classHash
	return nil
}

// IsDeployed reports whether address is mapped to a class hash.
func (s *StateStore) IsDeployed(address *felt.Felt) bool {
	_, ok := s.addressToClassHash[*address]
	return ok
}

// ClassHashAt returns the class hash deployed at address, or
// ErrContractNotFound.
func (s *StateStore) ClassHashAt(address *felt.Felt) (*felt.Felt, error) {
	ch, ok := s.addressToClassHash[*address]
	if !ok {
		return nil, ErrContractNotFound
	}
	return &ch, nil
}

// SetStorage writes value at key. Per SPEC_FULL.md §3, callers (vm.Executor)
// are responsible for only writing to undeployed addresses during
// deploy-account construction; StateStore itself does not enforce that
// rule, matching the spec's note that it is the executor, not the store,
// that rejects such writes outside construction.
func (s *StateStore) SetStorage(key StorageKey, value *felt.Felt) {
	s.storage[key] = *value
}

// GetStorage reads key, returning the zero felt for unset keys.
func (s *StateStore) GetStorage(key StorageKey) *felt.Felt {
	v, ok := s.storage[key]
	if !ok {
		return new(felt.Felt)
	}
	return &v
}

// GetNonce reads address's nonce, zero if unset.
func (s *StateStore) GetNonce(address *felt.Felt) *felt.Felt {
	n, ok := s.addressToNonce[*address]
	if !ok {
		return new(felt.Felt)
	}
	return &n
}

// SetNonce sets address's nonce directly (used by predeploy to seed
// genesis accounts with nonce 0).
func (s *StateStore) SetNonce(address *felt.Felt, nonce *felt.Felt) {
	s.addressToNonce[*address] = *nonce
}

// IncrementNonce adds one to address's current nonce.
func (s *StateStore) IncrementNonce(address *felt.Felt) {
	n := s.GetNonce(address)
	next := new(felt.Felt).Add(n, felt.One())
	s.addressToNonce[*address] = *next
}

// Snapshot deep-copies the store's maps, returning the contract
// SPEC_FULL.md §9 calls a "Token": opaque, purely observational, safe to
// Restore later regardless of how many further writes happened to the
// original, or how many further snapshots are taken, in between.
func (s *StateStore) Snapshot() *StateStore {
	clone := NewStateStore()
	cloneMapsInto(clone, s)
	return clone
}

// Restore replaces s's contents with a fresh deep copy of snapshot's, per
// SPEC_FULL.md §4.2. Copying rather than aliasing snapshot's maps keeps
// the token reusable: restoring the same Token twice, or taking another
// Snapshot of snapshot afterwards, must not be able to corrupt s.
func (s *StateStore) Restore(snapshot *StateStore) {
	fresh := NewStateStore()
	cloneMapsInto(fresh, snapshot)
	*s = *fresh
}

// Equal reports whether s and other have identical class hashes, nonces
// and storage, and declare the same set of class hashes (the declared
// class bodies themselves are not compared). Used by tests to check the
// atomicity property (SPEC_FULL.md §8): a rejected transaction must leave
// pending state bit-equal to before.
func (s *StateStore) Equal(other *StateStore) bool {
	if len(s.addressToClassHash) != len(other.addressToClassHash) ||
		len(s.addressToNonce) != len(other.addressToNonce) ||
		len(s.storage) != len(other.storage) ||
		len(s.classes) != len(other.classes) {
		return false
	}
	for k, v := range s.addressToClassHash {
		if ov, ok := other.addressToClassHash[k]; !ok || !ov.Equal(&v) {
			return false
		}
	}
	for k, v := range s.addressToNonce {
		if ov, ok := other.addressToNonce[k]; !ok || !ov.Equal(&v) {
			return false
		}
	}
	for k, v := range s.storage {
		if ov, ok := other.storage[k]; !ok || !ov.Equal(&v) {
			return false
		}
	}
	for k := range s.classes {
		if _, ok := other.classes[k]; !ok {
			return false
		}
	}
	return true
}

func cloneMapsInto(dst, src *StateStore) {
	for k, v := range src.addressToClassHash {
		dst.addressToClassHash[k] = v
	}
	for k, v := range src.addressToNonce {
		dst.addressToNonce[k] = v
	}
	for k, v := range src.storage {
		dst.storage[k] = v
	}
	for k, v := range src.classes {
		// Class is an interface over program bytes that are immutable
		// once declared (SPEC_FULL.md §3 lifecycle), so sharing the
		// pointer here is safe; only the DeclaredClass struct itself
		// needs copying, which := already does.
		dcCopy := v
		dst.classes[k] = dcCopy
	}
}
