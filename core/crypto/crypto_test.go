package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starknet-devnet/devnetgo/core/crypto"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

func TestPedersenIsDeterministic(t *testing.T) {
	a := new(felt.Felt).SetUint64(1)
	b := new(felt.Felt).SetUint64(2)

	h1 := crypto.Pedersen(a, b)
	h2 := crypto.Pedersen(a, b)
	assert.True(t, h1.Equal(h2))
}

func TestPedersenIsNotCommutative(t *testing.T) {
	a := new(felt.Felt).SetUint64(1)
	b := new(felt.Felt).SetUint64(2)

	assert.False(t, crypto.Pedersen(a, b).Equal(crypto.Pedersen(b, a)))
}

func TestPedersenArrayMixesElementCount(t *testing.T) {
	a := new(felt.Felt).SetUint64(1)

	// [a] and [a, 0] must hash differently: the array-hash formula mixes
	// in the element count, not just the fold.
	withOne := crypto.PedersenArray(a)
	withTwo := crypto.PedersenArray(a, new(felt.Felt))
	assert.False(t, withOne.Equal(withTwo))
}

func TestPedersenArrayOfEmptyIsStable(t *testing.T) {
	h1 := crypto.PedersenArray()
	h2 := crypto.PedersenArray()
	assert.True(t, h1.Equal(h2))
}

func TestPoseidonIsDeterministicAndDistinctFromPedersen(t *testing.T) {
	a := new(felt.Felt).SetUint64(7)
	b := new(felt.Felt).SetUint64(11)

	p1 := crypto.Poseidon(a, b)
	p2 := crypto.Poseidon(a, b)
	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(crypto.Pedersen(a, b)))
}

func TestPoseidonArrayIsDeterministic(t *testing.T) {
	elems := []*felt.Felt{
		new(felt.Felt).SetUint64(1),
		new(felt.Felt).SetUint64(2),
		new(felt.Felt).SetUint64(3),
	}
	h1 := crypto.PoseidonArray(elems...)
	h2 := crypto.PoseidonArray(elems...)
	assert.True(t, h1.Equal(h2))
}
