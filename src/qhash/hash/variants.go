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

package qhash

import (
	"encoding/binary"
	"math/bits"
)

// chunks iterates the input as little-endian 32-bit words, zero-padding
// the tail, and hands each word to absorb. The two bit-length words are
// always delivered last.
func chunks(data []byte, absorb func(uint32)) {
	for len(data) >= chunkSize {
		absorb(binary.LittleEndian.Uint32(data))
		data = data[chunkSize:]
	}
	if len(data) > 0 {
		var tail [chunkSize]byte
		copy(tail[:], data)
		absorb(binary.LittleEndian.Uint32(tail[:]))
	}
}

// sumBase is the baseline pipeline: chunked absorb with three mixing
// rounds per state word and a single shared finalization.
func sumBase(outputLength int, domainTag, data []byte) []byte {
	state := initState(stateWords(outputLength), domainTag)
	chunks(data, func(c uint32) {
		absorbWord(state, c, 3)
	})
	lo, hi := lengthChunks(len(data))
	absorbWord(state, lo, 3)
	absorbWord(state, hi, 3)
	finalize(state)
	return squeeze(state, outputLength)
}

// sumEnhancedA deepens the baseline: four mixing rounds per word and a
// full cross-word diffusion pass after every absorbed chunk, trading
// throughput for a steeper avalanche slope on short inputs.
func sumEnhancedA(outputLength int, domainTag, data []byte) []byte {
	state := initState(stateWords(outputLength), domainTag)
	chunks(data, func(c uint32) {
		absorbWord(state, c, 4)
		diffuse(state)
	})
	lo, hi := lengthChunks(len(data))
	absorbWord(state, lo, 4)
	absorbWord(state, hi, 4)
	diffuse(state)
	finalize(state)
	return squeeze(state, outputLength)
}

// sumEnhancedB is the block-oriented pipeline: 64-byte blocks XORed
// into the state word-wise, a neighbour mixing walk after each chunk,
// and a rotation permutation of the whole state between blocks. The
// bit length is absorbed as one final dedicated block.
func sumEnhancedB(outputLength int, domainTag, data []byte) []byte {
	state := initState(stateWords(outputLength), domainTag)
	n := len(state)

	absorbBlock := func(block []byte) {
		for off := 0; off < BlockSize; off += chunkSize {
			var c uint32
			if off < len(block) {
				var w [chunkSize]byte
				copy(w[:], block[off:])
				c = binary.LittleEndian.Uint32(w[:])
			}
			idx := (off / chunkSize) % n
			state[idx] ^= c

			for j := 0; j < n; j++ {
				k := (j + 1) % n
				a, b := state[j], state[k]
				for r := 0; r < 4; r++ {
					a, b = mixPair(a, b)
					a = bits.RotateLeft32(a, rotations[r%len(rotations)])
					b += extraPrimes[r%len(extraPrimes)]
				}
				state[j], state[k] = a, b
			}
		}
		// Rotation permutation between blocks; a pure index shift is
		// bijective for every state size, unlike multiplicative strides.
		stride := n/2 + 1
		tmp := make([]uint32, n)
		copy(tmp, state)
		for i := 0; i < n; i++ {
			state[(i+stride)%n] = tmp[i] ^ bits.RotateLeft32(tmp[(i+3)%n], 13)
		}
	}

	for off := 0; off < len(data); off += BlockSize {
		end := off + BlockSize
		if end > len(data) {
			end = len(data)
		}
		absorbBlock(data[off:end])
	}

	var lenBlock [8]byte
	binary.LittleEndian.PutUint64(lenBlock[:], uint64(len(data))*8)
	absorbBlock(lenBlock[:])

	finalize(state)
	return squeeze(state, outputLength)
}

// sumCombined runs domain-separated EnhancedA and EnhancedB halves and
// interleaves them, then re-mixes the interleaved bytes through the
// shared finalization so no output byte comes from only one pipeline.
func sumCombined(outputLength int, domainTag, data []byte) []byte {
	prefixed := func(p byte) []byte {
		buf := make([]byte, len(data)+1)
		buf[0] = p
		copy(buf[1:], data)
		return buf
	}

	halfA := (outputLength + 1) / 2
	halfB := outputLength - halfA
	if halfB < 1 {
		halfB = 1
	}
	a := sumEnhancedA(halfA, domainTag, prefixed(0x01))
	b := sumEnhancedB(halfB, domainTag, prefixed(0x02))

	inter := make([]byte, outputLength)
	for i := 0; i < outputLength; i++ {
		if i%2 == 0 && i/2 < len(a) {
			inter[i] = a[i/2]
		} else {
			inter[i] = b[(i/2)%len(b)]
		}
	}

	state := initState(stateWords(outputLength), domainTag)
	chunks(inter, func(c uint32) {
		absorbWord(state, c, 4)
	})
	finalize(state)
	return squeeze(state, outputLength)
}
