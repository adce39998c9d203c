package quality

import (
	"github.com/minio/highwayhash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// highwayKey is the fixed 256-bit key for the HighwayHash reference.
// The comparison cares about diffusion behaviour, not secrecy.
var highwayKey = make([]byte, 32)

// References returns the standard digests the engine variants are
// compared against, each adapted to DigestFunc. SHA3-256 and
// BLAKE2b-256 are the cryptographic baselines; HighwayHash-256 shows
// where a fast keyed mixer sits on the same measures.
func References() map[string]DigestFunc {
	return map[string]DigestFunc{
		"sha3-256": func(data []byte) []byte {
			d := sha3.Sum256(data)
			return d[:]
		},
		"blake2b-256": func(data []byte) []byte {
			d := blake2b.Sum256(data)
			return d[:]
		},
		"highwayhash-256": func(data []byte) []byte {
			d := highwayhash.Sum(data, highwayKey)
			return d[:]
		},
	}
}
