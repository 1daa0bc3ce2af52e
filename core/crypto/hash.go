// Package crypto implements the two hash primitives the target protocol
// mixes into every address, class hash and transaction hash: Pedersen and
// Poseidon. Both are thin wrappers over consensys/gnark-crypto's
// stark-curve implementations, the same dependency juno itself wraps in
// its own core/crypto package, so outputs match the target protocol
// bit-for-bit instead of depending on a hand-rolled field/curve.
package crypto

import (
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/pedersenhash"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/poseidon"

	"github.com/starknet-devnet/devnetgo/core/felt"
)

// Pedersen computes the two-input Pedersen hash used pervasively by the
// target protocol for address and commitment derivation.
func Pedersen(a, b *felt.Felt) *felt.Felt {
	aBytes := a.Bytes()
	bBytes := b.Bytes()

	var ae, be fp.Element
	ae.SetBytes(aBytes[:])
	be.SetBytes(bBytes[:])

	res := pedersenhash.Pedersen(&ae, &be)

	out := new(felt.Felt)
	resBytes := res.Bytes()
	out.SetBytes(resBytes[:])
	return out
}

// PedersenArray computes the StarkNet "array hash": it folds Pedersen
// over elems left to right starting from zero, then mixes in the element
// count. This is the formula every one of the four transaction-hash
// variants in this engine is built from.
func PedersenArray(elems ...*felt.Felt) *felt.Felt {
	acc := new(felt.Felt)
	for _, e := range elems {
		acc = Pedersen(acc, e)
	}
	count := new(felt.Felt).SetUint64(uint64(len(elems)))
	return Pedersen(acc, count)
}

// Poseidon computes the two-input Poseidon hash used by Cairo-1 class
// commitments.
func Poseidon(a, b *felt.Felt) *felt.Felt {
	aBytes := a.Bytes()
	bBytes := b.Bytes()

	var ae, be fp.Element
	ae.SetBytes(aBytes[:])
	be.SetBytes(bBytes[:])

	var two fp.Element
	two.SetUint64(2)
	state := [3]fp.Element{ae, be, two}
	poseidon.Permutation(&state)

	out := new(felt.Felt)
	resBytes := state[0].Bytes()
	out.SetBytes(resBytes[:])
	return out
}

// PoseidonArray hashes elems with the standard Poseidon sponge: absorb two
// elements at a time into a 3-element state, adding 1 to the rate portion
// on the final (possibly partial) chunk, permuting after every absorption,
// and squeezing the first state element.
func PoseidonArray(elems ...*felt.Felt) *felt.Felt {
	var state [3]fp.Element

	absorb := func(a, b *felt.Felt) {
		var ae, be fp.Element
		aBytes := a.Bytes()
		ae.SetBytes(aBytes[:])
		if b != nil {
			bBytes := b.Bytes()
			be.SetBytes(bBytes[:])
		}
		state[0].Add(&state[0], &ae)
		state[1].Add(&state[1], &be)
		poseidon.Permutation(&state)
	}

	i := 0
	for ; i+1 < len(elems); i += 2 {
		absorb(elems[i], elems[i+1])
	}
	one := new(felt.Felt).SetUint64(1)
	if i < len(elems) {
		absorb(elems[i], one)
	} else {
		absorb(one, nil)
	}

	out := new(felt.Felt)
	resBytes := state[0].Bytes()
	out.SetBytes(resBytes[:])
	return out
}
