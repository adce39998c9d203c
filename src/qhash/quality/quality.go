// MIT License
//
// Copyright (c) 2025 dirac-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package quality measures the statistical properties the hash engine
// advertises: avalanche behaviour under single-bit input flips,
// output entropy, and empirical collision counts. The same measures
// run against standard reference digests for side-by-side comparison.
package quality

import (
	"fmt"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dirac-core/go/src/crypto/keymat"
	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// avalancheInputLen is the input size for avalanche trials, spanning
// more than one absorb block.
const avalancheInputLen = 64

// DigestFunc is any fixed-output hash under measurement.
type DigestFunc func([]byte) []byte

// AvalancheResult summarizes bit-flip ratios over a trial set. The
// ideal Mean is 0.5: one flipped input bit changes half the output.
type AvalancheResult struct {
	Trials int
	Mean   float64
	Min    float64
	Max    float64
}

// EngineFunc adapts a hash configuration to a DigestFunc.
func EngineFunc(cfg qhash.Config) DigestFunc {
	return func(data []byte) []byte {
		return qhash.Sum(cfg, data)
	}
}

// Avalanche measures the configured engine variant.
func Avalanche(cfg qhash.Config, trials int, rng keymat.EntropySource) (AvalancheResult, error) {
	return AvalancheFunc(EngineFunc(cfg), trials, rng)
}

// AvalancheFunc runs trials random input pairs differing in exactly
// one bit through f and reports the fraction of output bits that flip.
// Inputs are drawn up front from rng; the digest work is fanned out
// over GOMAXPROCS workers, which is sound because f must be a pure
// function.
func AvalancheFunc(f DigestFunc, trials int, rng keymat.EntropySource) (AvalancheResult, error) {
	if trials <= 0 {
		return AvalancheResult{}, fmt.Errorf("quality: trial count %d must be positive", trials)
	}

	inputs := make([][]byte, trials)
	flips := make([]int, trials)
	for i := range inputs {
		in, err := keymat.GenerateSeed(rng, avalancheInputLen)
		if err != nil {
			return AvalancheResult{}, err
		}
		inputs[i] = in
		// Reuse input entropy for the flip position.
		flips[i] = (int(in[0])<<8 | int(in[1])) % (avalancheInputLen * 8)
	}

	ratios := make([]float64, trials)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < trials; i++ {
		i := i
		g.Go(func() error {
			in := inputs[i]
			flipped := append([]byte(nil), in...)
			flipped[flips[i]/8] ^= 1 << (flips[i] % 8)

			a, b := f(in), f(flipped)
			if len(a) != len(b) || len(a) == 0 {
				return fmt.Errorf("quality: digest function produced %d and %d bytes", len(a), len(b))
			}
			diff := 0
			for k := range a {
				diff += bits.OnesCount8(a[k] ^ b[k])
			}
			ratios[i] = float64(diff) / float64(len(a)*8)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AvalancheResult{}, err
	}

	res := AvalancheResult{Trials: trials, Min: 1, Max: 0}
	var sum float64
	for _, r := range ratios {
		sum += r
		if r < res.Min {
			res.Min = r
		}
		if r > res.Max {
			res.Max = r
		}
	}
	res.Mean = sum / float64(trials)
	return res, nil
}
