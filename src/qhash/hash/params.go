package qhash

// Output length bounds and the absorb geometry shared by every variant.
const (
	MinOutputLength = 1  // 8-bit digest, useful only for testing
	MaxOutputLength = 64 // 512-bit internal state ceiling

	// BlockSize is the absorb block size in bytes, also used as the
	// HMAC padding block.
	BlockSize = 64

	chunkSize = 4 // bytes per 32-bit absorbed chunk

	prime32 = 0x9e3779b9
)

// primes seeds the internal state and drives the multiplicative
// non-linearity. All values are odd, so multiplication mod 2^32 is
// invertible and loses no state.
var primes = [12]uint32{
	0x9e3779b9, 0x6a09e667, 0xbb67ae85, 0x3c6ef372,
	0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab,
	0x5be0cd19, 0xca62c1d6, 0x84caa73b, 0xfe94f82b,
}

// extraPrimes widens the per-chunk key schedule.
var extraPrimes = [12]uint32{
	0x243f6a88, 0x85a308d3, 0x13198a2e, 0x03707344,
	0xa4093822, 0x299f31d0, 0x082efa98, 0xec4e6c89,
	0x452821e6, 0x38d01377, 0xbe5466cf, 0x34e90c6c,
}

// rotations is the per-round rotation schedule.
var rotations = [10]int{7, 11, 13, 17, 19, 23, 29, 31, 5, 3}

// stateWords returns the number of 32-bit state words for a given
// output length. The floor of eight words keeps short digests from
// running the diffusion rounds over a degenerate state.
func stateWords(outputLength int) int {
	n := (outputLength + chunkSize - 1) / chunkSize
	if n < 8 {
		n = 8
	}
	return n
}
