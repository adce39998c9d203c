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

// Package qhash implements the quantum-inspired hash engine: a family of
// deterministic mixing pipelines over a 32-bit word state, selected by an
// immutable Config. Every operation is a pure function of its inputs;
// the engine draws no randomness and takes no data-dependent branches on
// secret values. The signature schemes under src/crypto build on this
// package exclusively.
package qhash

import (
	"fmt"
	"math/bits"
)

// mixPair is the core non-linear mixing step. It combines addition,
// rotation, XOR and odd-constant multiplication so that every output
// bit of (a, b) depends on every input bit after a few iterations.
func mixPair(a, b uint32) (uint32, uint32) {
	a += b
	b = bits.RotateLeft32(b, 13) ^ a
	a = bits.RotateLeft32(a, 7) + b
	b = bits.RotateLeft32(b, 17) ^ a
	a += b
	b = bits.RotateLeft32(b, 5) ^ (a * prime32)
	a = bits.RotateLeft32(a, 11) + bits.RotateLeft32(b, 19)
	return a, b
}

// initState seeds n state words from the prime table and folds the
// domain tag in before any input is absorbed. Distinct tags therefore
// place the whole pipeline in distinct starting states, which is what
// gives HMAC and the signature schemes their cross-protocol separation.
func initState(n int, domainTag []byte) []uint32 {
	state := make([]uint32, n)
	for i := range state {
		state[i] = primes[i%len(primes)]
	}
	for k, c := range domainTag {
		i := k % n
		a, b := mixPair(state[i], uint32(c)*prime32+uint32(k))
		state[i] = a ^ b
	}
	if len(domainTag) > 0 {
		diffuse(state)
	}
	return state
}

// absorbWord folds one 32-bit chunk into every state word. rounds
// controls the per-word mixing depth and is what separates the Base
// pipeline from EnhancedA.
func absorbWord(state []uint32, chunk uint32, rounds int) {
	for i := range state {
		a := state[i]
		b := chunk ^ primes[i%len(primes)] ^ extraPrimes[i%len(extraPrimes)]
		for r := 0; r < rounds; r++ {
			a, b = mixPair(a, b)
			b = bits.RotateLeft32(b, rotations[r%len(rotations)])
			a *= primes[(i+r)%len(primes)]
		}
		state[i] = a ^ b
	}
}

// diffuse runs one cross-word diffusion pass so that neighbouring and
// opposite words feed each other.
func diffuse(state []uint32) {
	n := len(state)
	tmp := make([]uint32, n)
	copy(tmp, state)
	for i := range state {
		j := (i + 1) % n
		k := (i + n/2) % n
		v := bits.RotateLeft32(tmp[i], 5) ^ tmp[j] ^ bits.RotateLeft32(tmp[k], 13)
		state[i] = v + bits.RotateLeft32(v, 11)
	}
}

// lengthChunks encodes the input's bit length as two 32-bit chunks,
// low word first. Absorbing them as the final block closes the
// length-extension hole: no prefix of one message can share a final
// state with another message of different length.
func lengthChunks(inputLen int) (uint32, uint32) {
	bitLen := uint64(inputLen) * 8
	return uint32(bitLen), uint32(bitLen >> 32)
}

// finalize runs the diffusion rounds that give the engine its
// avalanche behaviour: a full cross-word pass followed by chained
// triple mixes walking the state. The round count scales with the
// state size so wider digests get proportionally deeper mixing.
func finalize(state []uint32) {
	diffuse(state)
	n := len(state)
	rounds := 4 * n
	for r := 0; r < rounds; r++ {
		i := r % n
		j := (i + 1) % n
		k := (i + n/2) % n
		state[i], state[j] = mixPair(state[i], state[j])
		state[j], state[k] = mixPair(state[j], state[k])
		state[k], state[i] = mixPair(state[k], state[i])
	}
}

// squeeze truncates the state to outputLength bytes, little-endian.
func squeeze(state []uint32, outputLength int) []byte {
	out := make([]byte, outputLength)
	for i := 0; i < outputLength; i++ {
		out[i] = byte(state[i/chunkSize] >> ((i % chunkSize) * 8))
	}
	return out
}

// Sum computes the digest of data under cfg. It is pure and
// deterministic, and is defined for empty input: the bit-length block
// is always absorbed, so the empty string has a well-defined digest
// per configuration.
//
// Sum panics if cfg did not come out of NewConfig with these bounds;
// malformed configuration is a construction-time error, not a digest
// outcome.
func Sum(cfg Config, data []byte) []byte {
	checkConfig(cfg)
	return sumRaw(cfg.Algorithm, cfg.OutputLength, cfg.DomainTag, data)
}

// sumRaw dispatches to a pipeline without revalidating. The Combined
// pipeline calls back in here with derived half-lengths.
func sumRaw(alg Algorithm, outputLength int, domainTag, data []byte) []byte {
	switch alg {
	case Base:
		return sumBase(outputLength, domainTag, data)
	case EnhancedA:
		return sumEnhancedA(outputLength, domainTag, data)
	case EnhancedB:
		return sumEnhancedB(outputLength, domainTag, data)
	case Combined:
		return sumCombined(outputLength, domainTag, data)
	default:
		panic(fmt.Sprintf("qhash: unknown algorithm %d", alg))
	}
}

func checkConfig(cfg Config) {
	if !cfg.Algorithm.valid() {
		panic(fmt.Sprintf("qhash: unknown algorithm %d", cfg.Algorithm))
	}
	if cfg.OutputLength < MinOutputLength || cfg.OutputLength > MaxOutputLength {
		panic(fmt.Sprintf("qhash: output length %d outside [%d, %d]; use NewConfig",
			cfg.OutputLength, MinOutputLength, MaxOutputLength))
	}
}
