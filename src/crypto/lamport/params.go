package lamport

import qhash "github.com/dirac-core/go/src/qhash/hash"

// Params holds the one-time signature parameters. Everything is
// derived from the hash configuration: key and signature blocks are
// one digest long, and there is one block pair per digest bit.
type Params struct {
	Config qhash.Config
}

// NewParams binds a validated hash configuration to the scheme.
func NewParams(cfg qhash.Config) Params {
	return Params{Config: cfg}
}

// Bits returns L, the number of message digest bits and therefore the
// number of signature blocks.
func (p Params) Bits() int {
	return p.Config.OutputLength * 8
}

// BlockLength returns the length in bytes of one key or signature block.
func (p Params) BlockLength() int {
	return p.Config.OutputLength
}
