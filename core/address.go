package core

import (
	"math/big"

	"github.com/starknet-devnet/devnetgo/core/crypto"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// ContractAddress is a felt constrained to < 2^251, per SPEC_FULL.md §3.
type ContractAddress = felt.Felt

var addressBound = func() *felt.Felt {
	b := new(big.Int).Lsh(big.NewInt(1), 251)
	return new(felt.Felt).SetBigInt(b)
}()

// ValidAddress reports whether addr satisfies the ContractAddress
// invariant.
func ValidAddress(addr *felt.Felt) bool {
	return addr.Lt(addressBound)
}

var contractAddressPrefix = new(felt.Felt).SetBytes([]byte("STARKNET_CONTRACT_ADDRESS"))

// ComputeAddress derives the address a DeployAccount or UDC-mediated
// deployment will occupy, following the protocol's contract-address
// formula: pedersen_array(prefix, deployer, salt, class_hash,
// pedersen_array(constructor_calldata)) mod 2^251.
//
// deployer is zero for self-deploying DeployAccount transactions and for
// UDC deployments performed with the default "not from zero" deployer
// disabled; callers pass the UDC address explicitly when origin-dependent
// deployment is requested.
func ComputeAddress(deployer, salt, classHash *felt.Felt, constructorCalldata []*felt.Felt) *felt.Felt {
	callDataHash := crypto.PedersenArray(constructorCalldata...)
	raw := crypto.PedersenArray(contractAddressPrefix, deployer, salt, classHash, callDataHash)

	var rawBig big.Int
	raw.BigInt(&rawBig)
	var boundBig big.Int
	addressBound.BigInt(&boundBig)
	rawBig.Mod(&rawBig, &boundBig)

	return new(felt.Felt).SetBigInt(&rawBig)
}
