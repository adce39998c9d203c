package qhash

// Algorithm selects one of the deterministic mixing pipelines.
type Algorithm uint8

const (
	Base      Algorithm = iota // chunked absorb, three mixing rounds per word
	EnhancedA                  // four rounds plus per-chunk state diffusion
	EnhancedB                  // block-oriented absorb with state permutation
	Combined                   // domain-separated A/B halves, interleaved
)

var algorithmNames = [...]string{"base", "enhanced-a", "enhanced-b", "combined"}

// String returns the canonical name of the algorithm.
func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return "unknown"
}

// valid reports whether a names a member of the closed variant set.
func (a Algorithm) valid() bool {
	return int(a) < len(algorithmNames)
}

// Config is an immutable description of one hash pipeline: the variant,
// the digest length in bytes, and an optional domain-separation tag.
//
// The same Config value must be threaded through key generation, every
// signing call and every verification call on a given keypair. The
// signature packages embed the Config in their Params for exactly this
// reason; constructing it once via NewConfig and never re-deriving it
// from strings at call sites is what rules out the
// generate/sign/verify mismatch class of failure.
type Config struct {
	Algorithm    Algorithm
	OutputLength int    // digest length in bytes
	DomainTag    []byte // optional context tag, absorbed before the input
}

// Valid reports whether the config satisfies the NewConfig bounds.
// Configs built through NewConfig are always valid; this exists so
// verification paths can reject a hand-built Config without tripping
// the Sum panic.
func (c Config) Valid() bool {
	return c.Algorithm.valid() &&
		c.OutputLength >= MinOutputLength && c.OutputLength <= MaxOutputLength
}

// Equal reports whether two configs describe the same pipeline.
func (c Config) Equal(o Config) bool {
	if c.Algorithm != o.Algorithm || c.OutputLength != o.OutputLength {
		return false
	}
	if len(c.DomainTag) != len(o.DomainTag) {
		return false
	}
	for i := range c.DomainTag {
		if c.DomainTag[i] != o.DomainTag[i] {
			return false
		}
	}
	return true
}
