package hypertree

import (
	"fmt"

	"github.com/dirac-core/go/src/crypto/keymat"
	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// selectLabel namespaces the leaf-selection PRF under the master seed.
var selectLabel = []byte("hypertree-select")

// leafIndexFor maps a message to a leaf: the first 8 bytes of
// DeriveKey(cfg, seed, selectLabel || Sum(cfg, message)), big-endian,
// reduced mod 2^H. Deterministic in (seed, message), so no signing
// state needs tracking, and collision-resistant in the message, so two
// distinct messages land on the same leaf with probability ~2^-H.
func leafIndexFor(params Params, seed, message []byte) uint64 {
	msgDigest := qhash.Sum(params.Config, message)
	label := make([]byte, 0, len(selectLabel)+len(msgDigest))
	label = append(label, selectLabel...)
	label = append(label, msgDigest...)
	sel := keymat.DeriveKey(params.Config, seed, label)

	n := len(sel)
	if n > 8 {
		n = 8
	}
	var v uint64
	for _, b := range sel[:n] {
		v = v<<8 | uint64(b)
	}
	return v % params.Leaves()
}

// leaf returns leaf j's keypair, re-deriving it from the seed on a
// cache miss.
func (sk *PrivateKey) leaf(j uint64) *leafPair {
	if pair, ok := sk.leafCache.get(j); ok {
		return pair
	}
	pair := deriveLeaf(sk.Params, sk.Seed, j)
	sk.leafCache.put(j, pair)
	return pair
}

// Sign produces a hypertree signature: the message-selected leaf's
// one-time signature plus the authentication path to the root. Cost is
// O(H + L) digests against the cached arena (plus 2L to re-derive the
// leaf keypair on a cache miss). Signing mutates nothing; the same
// private key may sign concurrently.
func (sk *PrivateKey) Sign(message []byte) (*Signature, error) {
	leaves := sk.Params.Leaves()
	if uint64(len(sk.nodes)) != 2*leaves-1 {
		return nil, fmt.Errorf("hypertree: private key arena has %d nodes, want %d", len(sk.nodes), 2*leaves-1)
	}

	idx := leafIndexFor(sk.Params, sk.Seed, message)
	pair := sk.leaf(idx)

	otsSig, err := pair.sk.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("hypertree: leaf signature failed: %w", err)
	}

	// Collect sibling hashes walking the arena from leaf to root.
	path := make([][]byte, 0, sk.Params.Height)
	node := leaves - 1 + idx
	for node > 0 {
		sibling := node + 1
		if node%2 == 0 {
			sibling = node - 1
		}
		path = append(path, append([]byte(nil), sk.nodes[sibling]...))
		node = (node - 1) / 2
	}

	if sk.metrics != nil {
		sk.metrics.SignaturesIssued.Inc()
	}

	return &Signature{
		LeafIndex: idx,
		LeafPK:    pair.pk,
		OTSSig:    otsSig,
		AuthPath:  path,
	}, nil
}
