package hypertree

import (
	"bytes"
	"fmt"

	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// Verify checks a hypertree signature against the root public key.
//
// Structural violations (missing components, auth path of the wrong
// length, out-of-range leaf index, misshapen sibling hashes) fail with
// ErrMalformedSignature. Everything else, including a hash
// configuration that disagrees with the one the key was generated
// under, returns a definite false with no error: verification never
// panics and never lets a fault read as success.
func (pk *PublicKey) Verify(message []byte, sig *Signature) (bool, error) {
	// A hand-built key that skipped NewConfig or NewParams must read as
	// a mismatch, not a panic further down in the digest engine.
	if !pk.Params.Config.Valid() || pk.Params.Height < MinHeight || pk.Params.Height > MaxHeight {
		return false, nil
	}
	if sig == nil || sig.LeafPK == nil || sig.OTSSig == nil {
		return false, fmt.Errorf("%w: missing components", ErrMalformedSignature)
	}
	if sig.LeafIndex >= pk.Params.Leaves() {
		return false, fmt.Errorf("%w: leaf index %d out of range for height %d",
			ErrMalformedSignature, sig.LeafIndex, pk.Params.Height)
	}
	if len(sig.AuthPath) != pk.Params.Height {
		return false, fmt.Errorf("%w: auth path has %d nodes, want %d",
			ErrMalformedSignature, len(sig.AuthPath), pk.Params.Height)
	}
	for _, sibling := range sig.AuthPath {
		if len(sibling) != pk.Params.Config.OutputLength {
			return false, fmt.Errorf("%w: auth path node has %d bytes, want %d",
				ErrMalformedSignature, len(sibling), pk.Params.Config.OutputLength)
		}
	}

	// Config disagreement is a mismatch outcome, not a fault.
	if !sig.LeafPK.Params.Config.Equal(pk.Params.Config) {
		return false, nil
	}
	if !sig.LeafPK.Verify(message, sig.OTSSig) {
		return false, nil
	}

	// Fold the auth path upward from the leaf commitment; the leaf
	// index bits decide the left/right order at each level.
	node := leafHash(pk.Params.Config, sig.LeafPK)
	idx := sig.LeafIndex
	for _, sibling := range sig.AuthPath {
		buf := make([]byte, 0, len(node)+len(sibling))
		if idx&1 == 0 {
			buf = append(buf, node...)
			buf = append(buf, sibling...)
		} else {
			buf = append(buf, sibling...)
			buf = append(buf, node...)
		}
		node = qhash.Sum(pk.Params.Config, buf)
		idx >>= 1
	}

	return bytes.Equal(node, pk.Root), nil
}
