package predeploy

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/starknet-devnet/devnetgo/core/crypto"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// keyPair is a deterministically generated devnet account key. Real
// starknet keys are STARK-curve points, but this engine never verifies
// transaction signatures (SimpleExecutor has no signature-validation
// step, matching a devnet's --no-validate convenience and spec.md's
// explicit treatment of validation as an Executor-internal, opaque
// concern). Deriving the public key with Pedersen rather than true EC
// scalar multiplication is therefore a safe simplification: the value
// only needs to be a stable, unique-per-index commitment, not a point
// any client will do an ECDSA verify against.
type keyPair struct {
	PrivateKey *felt.Felt
	PublicKey  *felt.Felt
}

var pubKeyDomain = new(felt.Felt).SetBytes([]byte("devnet_public_key"))

// deriveKeyPair folds seed and index through Keccak256 (the same
// starknet_keccak building block vm/selector.go uses) to get a
// uniformly distributed private key, then derives a public key as a
// Pedersen commitment to it.
func deriveKeyPair(seed int64, index int) keyPair {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(seed))
	binary.BigEndian.PutUint64(buf[8:16], uint64(index))

	h := sha3.NewLegacyKeccak256()
	h.Write(buf[:])
	digest := h.Sum(nil)

	priv := new(felt.Felt).SetBytes(digest)
	pub := crypto.Pedersen(priv, pubKeyDomain)
	return keyPair{PrivateKey: priv, PublicKey: pub}
}
