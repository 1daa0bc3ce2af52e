package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

func TestHashIndexInsertAndGet(t *testing.T) {
	idx := core.NewHashIndex[string](16)
	h := *new(felt.Felt).SetUint64(1)

	require.NoError(t, idx.Insert(h, "first"))

	v, ok := idx.Get(h)
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestHashIndexRejectsDuplicateInsert(t *testing.T) {
	idx := core.NewHashIndex[string](16)
	h := *new(felt.Felt).SetUint64(1)

	require.NoError(t, idx.Insert(h, "first"))
	err := idx.Insert(h, "second")
	assert.ErrorIs(t, err, core.ErrDuplicateHash)
}

func TestHashIndexGetMissingReturnsFalse(t *testing.T) {
	idx := core.NewHashIndex[string](16)
	_, ok := idx.Get(*new(felt.Felt).SetUint64(99))
	assert.False(t, ok)
}

func TestHashIndexEachPreservesInsertionOrder(t *testing.T) {
	idx := core.NewHashIndex[int](16)
	for i := 1; i <= 5; i++ {
		require.NoError(t, idx.Insert(*new(felt.Felt).SetUint64(uint64(i)), i))
	}

	var seen []int
	idx.Each(func(h felt.Felt, v int) bool {
		seen = append(seen, v)
		return true
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestHashIndexEachStopsOnFalse(t *testing.T) {
	idx := core.NewHashIndex[int](16)
	for i := 1; i <= 5; i++ {
		require.NoError(t, idx.Insert(*new(felt.Felt).SetUint64(uint64(i)), i))
	}

	count := 0
	idx.Each(func(h felt.Felt, v int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestHashIndexSetOverwritesWithoutAffectingOrder(t *testing.T) {
	idx := core.NewHashIndex[string](16)
	h := *new(felt.Felt).SetUint64(1)
	require.NoError(t, idx.Insert(h, "first"))

	idx.Set(h, "updated")

	v, ok := idx.Get(h)
	require.True(t, ok)
	assert.Equal(t, "updated", v)
	assert.Equal(t, 1, idx.Len())
}
