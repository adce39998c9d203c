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

// Package keymat supplies the key material primitives shared by the
// signature schemes: secure seed generation from an injected entropy
// source and deterministic sub-key derivation through the hash engine.
//
// Seed generation and key derivation are deliberately separate
// operations. DeriveKey is reproducible by design and must never stand
// in for GenerateSeed where fresh, unpredictable material is required.
package keymat

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// EntropySource yields cryptographically secure random bytes. It is
// injected at the call site rather than read from an ambient global so
// tests can substitute a labeled deterministic generator without
// touching production key generation.
type EntropySource io.Reader

// OSEntropy returns the OS-backed CSPRNG. This is the only entropy
// source production key generation should ever see.
func OSEntropy() EntropySource {
	return rand.Reader
}

// GenerateSeed reads n random bytes from rng.
func GenerateSeed(rng EntropySource, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("keymat: seed length %d must be positive", n)
	}
	seed := make([]byte, n)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, fmt.Errorf("keymat: failed to read entropy: %w", err)
	}
	return seed, nil
}

// DeriveKey deterministically derives a sub-key from a master secret
// and a label: Sum(cfg, master || label). Equal inputs under an equal
// Config always yield equal output.
func DeriveKey(cfg qhash.Config, master, label []byte) []byte {
	buf := make([]byte, 0, len(master)+len(label))
	buf = append(buf, master...)
	buf = append(buf, label...)
	return qhash.Sum(cfg, buf)
}

// DeriveKeyIndex derives the index-th sub-key under a label, used for
// counter-mode expansion of one master secret into many blocks (per
// hypertree leaf seeds, per OTS key block). The index is encoded
// big-endian so derived streams are portable across platforms.
func DeriveKeyIndex(cfg qhash.Config, master, label []byte, index uint64) []byte {
	buf := make([]byte, 0, len(master)+len(label)+8)
	buf = append(buf, master...)
	buf = append(buf, label...)
	buf = binary.BigEndian.AppendUint64(buf, index)
	return qhash.Sum(cfg, buf)
}
