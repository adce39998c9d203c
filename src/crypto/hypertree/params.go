package hypertree

import (
	"fmt"

	qhash "github.com/dirac-core/go/src/qhash/hash"
)

const (
	// MinHeight is the smallest usable tree (two leaves).
	MinHeight = 1

	// MaxHeight bounds key generation cost. Construction is O(2^H)
	// digest operations; H=20 already means a million leaf keypairs.
	MaxHeight = 20

	// FastHeight is the reduced-height fast mode: key generation over
	// 256 leaves, trading signature capacity and long-term collision
	// margin for latency.
	FastHeight = 8

	// DefaultHeight balances generation latency against capacity.
	DefaultHeight = 10
)

// Params holds the hypertree parameters: the hash configuration shared
// with every embedded one-time signature, and the tree height H. The
// tree has 2^H leaves, each an independently derivable one-time
// keypair.
type Params struct {
	Config qhash.Config
	Height int
}

// NewParams validates the height bound and binds the hash
// configuration.
func NewParams(cfg qhash.Config, height int) (Params, error) {
	if height < MinHeight || height > MaxHeight {
		return Params{}, fmt.Errorf("hypertree: height %d outside [%d, %d]", height, MinHeight, MaxHeight)
	}
	return Params{Config: cfg, Height: height}, nil
}

// FastParams returns reduced-height parameters for callers that prefer
// key-generation latency over signature capacity.
func FastParams(cfg qhash.Config) Params {
	return Params{Config: cfg, Height: FastHeight}
}

// Leaves returns the number of leaves, 2^H.
func (p Params) Leaves() uint64 {
	return 1 << uint(p.Height)
}
