// Package utils holds the small cross-cutting helpers juno itself keeps in
// a utils package: generic slice mapping and the network/chain-id type,
// referenced directly from rpc/chain.go as utils.Map and
// h.bcReader.Network().
package utils

import (
	"errors"

	"github.com/starknet-devnet/devnetgo/core/felt"
)

// Map applies f to every element of s, returning a new slice. Mirrors
// juno's utils.Map exactly (used in the copied rpc/chain.go for entry
// point adaptation); returns nil for a nil input, matching that contract.
func Map[T, U any](s []T, f func(T) U) []U {
	if s == nil {
		return nil
	}
	out := make([]U, len(s))
	for i, v := range s {
		out[i] = f(v)
	}
	return out
}

// ErrResourceBusy signals the VM rejected a call due to throttling. No
// code path in this repository returns it.
var ErrResourceBusy = errors.New("resource busy")

// Network names the chain this node simulates and its chain-id felt.
type Network struct {
	Name       string
	L2ChainID  string
}

// L2ChainIDFelt returns the chain id as a felt, computed by interpreting
// the short-string chain name as big-endian bytes — the standard
// StarkNet short-string encoding for chain ids ("SN_MAIN", "SN_GOERLI",
// the devnet "SN_GOERLI"-style test net id, etc).
func (n Network) L2ChainIDFelt() *felt.Felt {
	return new(felt.Felt).SetBytes([]byte(n.L2ChainID))
}

var (
	Mainnet = Network{Name: "mainnet", L2ChainID: "SN_MAIN"}
	Sepolia = Network{Name: "sepolia", L2ChainID: "SN_SEPOLIA"}
	TestNet = Network{Name: "testnet", L2ChainID: "SN_GOERLI"}
)
