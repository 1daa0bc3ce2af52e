package vm_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/vm"
)

func TestSelectorIsDeterministic(t *testing.T) {
	assert.True(t, vm.Selector("transfer").Equal(vm.Selector("transfer")))
}

func TestSelectorDiffersByName(t *testing.T) {
	assert.False(t, vm.Selector("transfer").Equal(vm.Selector("approve")))
}

func TestSelectorIsMaskedTo250Bits(t *testing.T) {
	bound := new(big.Int).Lsh(big.NewInt(1), 250)
	boundFelt := new(felt.Felt).SetBigInt(bound)

	s := vm.Selector("increase_balance")
	assert.True(t, s.Lt(boundFelt))
}

func TestStorageVarAddressIsDeterministicAndKeyed(t *testing.T) {
	k1 := new(felt.Felt).SetUint64(1)
	k2 := new(felt.Felt).SetUint64(2)

	a1 := vm.StorageVarAddress("ERC20_balances", k1)
	a2 := vm.StorageVarAddress("ERC20_balances", k1)
	assert.True(t, a1.Equal(a2))

	b := vm.StorageVarAddress("ERC20_balances", k2)
	assert.False(t, a1.Equal(b))
}
