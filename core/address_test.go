package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

func TestValidAddressAcceptsBelowBound(t *testing.T) {
	assert.True(t, core.ValidAddress(new(felt.Felt).SetUint64(1)))
}

func TestComputeAddressIsDeterministic(t *testing.T) {
	deployer := new(felt.Felt)
	salt := new(felt.Felt).SetUint64(1)
	classHash := new(felt.Felt).SetUint64(2)
	calldata := []*felt.Felt{new(felt.Felt).SetUint64(3)}

	a1 := core.ComputeAddress(deployer, salt, classHash, calldata)
	a2 := core.ComputeAddress(deployer, salt, classHash, calldata)
	assert.True(t, a1.Equal(a2))
}

func TestComputeAddressDependsOnEveryInput(t *testing.T) {
	deployer := new(felt.Felt)
	salt := new(felt.Felt).SetUint64(1)
	classHash := new(felt.Felt).SetUint64(2)
	calldata := []*felt.Felt{new(felt.Felt).SetUint64(3)}

	base := core.ComputeAddress(deployer, salt, classHash, calldata)

	otherSalt := core.ComputeAddress(deployer, new(felt.Felt).SetUint64(99), classHash, calldata)
	assert.False(t, base.Equal(otherSalt))

	otherClass := core.ComputeAddress(deployer, salt, new(felt.Felt).SetUint64(99), calldata)
	assert.False(t, base.Equal(otherClass))

	otherCalldata := core.ComputeAddress(deployer, salt, classHash, []*felt.Felt{new(felt.Felt).SetUint64(99)})
	assert.False(t, base.Equal(otherCalldata))
}

func TestComputeAddressIsWithinAddressBound(t *testing.T) {
	addr := core.ComputeAddress(new(felt.Felt), new(felt.Felt).SetUint64(1), new(felt.Felt).SetUint64(2), nil)
	assert.True(t, core.ValidAddress(addr))
}
