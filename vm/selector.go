package vm

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/starknet-devnet/devnetgo/core/crypto"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// selectorBound is 2^250, the mask starknet_keccak applies to keccak256
// output so that entry-point selectors are always valid felts with their
// top bits clear.
var selectorBound = func() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), 250)
}()

// Selector computes the StarkNet entry-point selector for name: the
// starknet_keccak of its ASCII bytes, i.e. keccak256 masked to 250 bits.
// This is the real protocol formula (used by cairo-lang's
// get_selector_from_name), unlike the storage-variable addressing below
// which this engine's own built-in contracts are free to define.
func Selector(name string) *felt.Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	sum := h.Sum(nil)

	n := new(big.Int).SetBytes(sum)
	n.Mod(n, selectorBound)

	return new(felt.Felt).SetBigInt(n)
}

// storageVarBound is this engine's own (non-protocol-exact) modulus for
// built-in storage variable addresses; only our own ERC20/account/test
// contracts' storage layout depends on it, so bit-exactness against the
// real cairo-lang constant (2**251 - 256) is not required by
// SPEC_FULL.md §9 — only transaction/class/address hashes are.
var storageVarBound = func() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), 251)
}()

// StorageVarAddress computes the storage cell address for a named Cairo
// storage variable with the given key felts as pedersen_array(
// selector(name), keys...) mod storageVarBound. It is modelled on
// cairo-lang's get_storage_var_address but is not bit-identical to it.
func StorageVarAddress(name string, keys ...*felt.Felt) *felt.Felt {
	elems := append([]*felt.Felt{Selector(name)}, keys...)
	raw := crypto.PedersenArray(elems...)

	var n big.Int
	raw.BigInt(&n)
	n.Mod(&n, storageVarBound)
	return new(felt.Felt).SetBigInt(&n)
}
