package hypertree

import (
	"errors"

	"github.com/dirac-core/go/src/crypto/lamport"
	"github.com/dirac-core/go/src/qhash/metrics"
)

// ErrMalformedSignature reports a structurally invalid signature:
// wrong auth-path length, out-of-range leaf index, or misshapen
// components. It is distinct from the plain boolean mismatch outcome.
var ErrMalformedSignature = errors.New("hypertree: malformed signature")

// PrivateKey is the signing key: the master seed plus the node arena
// rebuilt from it. The scheme is stateless in the signing sense: no
// counter advances between signatures, and every leaf keypair is
// re-derivable from Seed alone. The arena and cache are in-memory
// acceleration only.
type PrivateKey struct {
	Params Params
	Seed   []byte

	nodes     [][]byte // array-indexed complete binary tree, root at 0
	leafCache *leafCache
	metrics   *metrics.Metrics
}

// PublicKey is the Merkle root committing to every leaf's one-time
// public key.
type PublicKey struct {
	Params Params
	Root   []byte
}

// Signature carries everything a verifier needs: the leaf index, the
// leaf's one-time public key, the one-time signature, and the H
// sibling hashes from leaf to root.
//
// The leaf public key is embedded because a selection-based one-time
// signature reveals only half the key blocks; it cannot be recomputed
// from the signature alone. One-time verification checks the signature
// against the embedded key, and the auth-path fold binds that key to
// the root.
type Signature struct {
	LeafIndex uint64
	LeafPK    *lamport.PublicKey
	OTSSig    *lamport.Signature
	AuthPath  [][]byte // ordered leaf to root, length H
}
