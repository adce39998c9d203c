package quality

import (
	"fmt"
	"math"

	"github.com/dirac-core/go/src/crypto/keymat"
	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// entropyInputLen is the input size for entropy and collision samples.
const entropyInputLen = 32

// Entropy estimates the Shannon entropy per output byte, in bits, over
// digests of random inputs. A well-mixed digest approaches 8 bits per
// byte as the sample count grows.
func Entropy(cfg qhash.Config, samples int, rng keymat.EntropySource) (float64, error) {
	if samples <= 0 {
		return 0, fmt.Errorf("quality: sample count %d must be positive", samples)
	}

	var histogram [256]uint64
	var total uint64
	for i := 0; i < samples; i++ {
		in, err := keymat.GenerateSeed(rng, entropyInputLen)
		if err != nil {
			return 0, err
		}
		for _, b := range qhash.Sum(cfg, in) {
			histogram[b]++
			total++
		}
	}

	var entropy float64
	for _, count := range histogram {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy, nil
}

// CollisionScan digests samples random inputs and reports how many
// landed on an already-seen output. For an output of L bits the
// birthday bound puts the expectation near samples^2 / 2^(L+1), which
// is zero for any practical sample count at 256-bit output.
func CollisionScan(cfg qhash.Config, samples int, rng keymat.EntropySource) (int, error) {
	if samples <= 0 {
		return 0, fmt.Errorf("quality: sample count %d must be positive", samples)
	}

	seen := make(map[string]struct{}, samples)
	collisions := 0
	for i := 0; i < samples; i++ {
		in, err := keymat.GenerateSeed(rng, entropyInputLen)
		if err != nil {
			return 0, err
		}
		d := string(qhash.Sum(cfg, in))
		if _, dup := seen[d]; dup {
			collisions++
			continue
		}
		seen[d] = struct{}{}
	}
	return collisions, nil
}
