// Package felt defines the universal 252-bit field element used throughout
// the engine: addresses, class hashes, nonces, selectors, storage keys and
// transaction hashes are all felts.
package felt

import (
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt is a element of the STARK field, backed by gnark-crypto's
// stark-curve base field so that Pedersen/Poseidon hashing built on top of
// it matches the target protocol bit-for-bit.
type Felt struct {
	impl fp.Element
}

const (
	// Base10 prints the felt as a decimal string.
	Base10 = 10
	// Base16 prints the felt as a 0x-prefixed hex string.
	Base16 = 16
)

var (
	Zero = Felt{}
	one  = func() Felt {
		var f Felt
		f.impl.SetOne()
		return f
	}()
)

// One returns the multiplicative identity.
func One() *Felt {
	f := one
	return &f
}

// SetBytes interprets buf as a big-endian integer and reduces it mod the
// field modulus.
func (f *Felt) SetBytes(buf []byte) *Felt {
	f.impl.SetBytes(buf)
	return f
}

// SetUint64 sets f to n.
func (f *Felt) SetUint64(n uint64) *Felt {
	f.impl.SetUint64(n)
	return f
}

// SetBigInt reduces b mod the field modulus into f.
func (f *Felt) SetBigInt(b *big.Int) *Felt {
	f.impl.SetBigInt(b)
	return f
}

// SetHex parses a 0x-prefixed or bare hex string.
func (f *Felt) SetHex(s string) (*Felt, error) {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return f.SetBytes(buf), nil
}

// Bytes returns the canonical big-endian 32-byte encoding.
func (f *Felt) Bytes() [32]byte {
	return f.impl.Bytes()
}

// Marshal is an alias of Bytes returning a slice, matching the style of
// code that persists felts as opaque keys.
func (f *Felt) Marshal() []byte {
	b := f.impl.Bytes()
	return b[:]
}

// BigInt returns f as a big.Int in [0, modulus).
func (f *Felt) BigInt(out *big.Int) *big.Int {
	return f.impl.BigInt(out)
}

// IsZero reports whether f is the additive identity.
func (f *Felt) IsZero() bool {
	return f.impl.IsZero()
}

// IsOne reports whether f is the multiplicative identity.
func (f *Felt) IsOne() bool {
	return f.impl.IsOne()
}

// Equal reports bit-equality of the canonical forms of f and other.
func (f *Felt) Equal(other *Felt) bool {
	return f.impl.Equal(&other.impl)
}

// Cmp gives the numeric ordering of f and other: -1, 0 or 1.
func (f *Felt) Cmp(other *Felt) int {
	return f.impl.Cmp(&other.impl)
}

// Add sets f = a + b and returns f.
func (f *Felt) Add(a, b *Felt) *Felt {
	f.impl.Add(&a.impl, &b.impl)
	return f
}

// Sub sets f = a - b and returns f.
func (f *Felt) Sub(a, b *Felt) *Felt {
	f.impl.Sub(&a.impl, &b.impl)
	return f
}

// Text renders f in the given base (Base10 or Base16).
func (f *Felt) Text(base int) string {
	var b big.Int
	f.impl.BigInt(&b)
	return b.Text(base)
}

// String renders f as a 0x-prefixed hex string, like fmt.Stringer.
func (f *Felt) String() string {
	return "0x" + f.Text(Base16)
}

// Lt reports whether f is strictly less than bound when both are viewed as
// unsigned integers. Used to check the ContractAddress < 2^251 invariant.
func (f *Felt) Lt(bound *Felt) bool {
	return f.Cmp(bound) < 0
}

// MarshalJSON renders f the way every starknet JSON-RPC field does: a
// 0x-prefixed hex string, never a JSON number (felts overflow float64).
func (f *Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts the same 0x-prefixed (or bare) hex string SetHex
// parses.
func (f *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = Felt{}
		return nil
	}
	_, err := f.SetHex(s)
	return err
}
