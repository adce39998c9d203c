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

// Package lamport implements the one-time signature scheme built on
// repeated hash engine calls: 2·L random private blocks (one pair per
// digest bit), per-block digests as the public key, and pure selection
// at signing time. Key generation costs 2L digests, signing zero,
// verification L.
package lamport

import (
	"bytes"
	"fmt"

	"github.com/dirac-core/go/src/crypto/keymat"
	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// label under which deterministic key blocks are expanded from a seed.
var blockLabel = []byte("lamport-block")

// GenerateKeyPair creates a fresh one-time keypair from the given
// entropy source. The private blocks are random; the public blocks are
// their digests under the params' hash configuration.
func GenerateKeyPair(params Params, rng keymat.EntropySource) (*PrivateKey, *PublicKey, error) {
	bits := params.Bits()
	blockLen := params.BlockLength()

	privKey := make([][2][]byte, bits)
	pubKey := make([][2][]byte, bits)
	for i := 0; i < bits; i++ {
		for b := 0; b < 2; b++ {
			block, err := keymat.GenerateSeed(rng, blockLen)
			if err != nil {
				return nil, nil, fmt.Errorf("lamport: failed to generate key block: %w", err)
			}
			privKey[i][b] = block
			pubKey[i][b] = qhash.Sum(params.Config, block)
		}
	}

	return &PrivateKey{Params: params, Key: privKey},
		&PublicKey{Params: params, Key: pubKey},
		nil
}

// GenerateKeyPairFromSeed deterministically expands one seed into a
// full keypair via counter-mode derivation. Equal seed and params
// always produce the same keypair; the hypertree relies on this to
// re-derive leaf keypairs on demand instead of storing them.
func GenerateKeyPairFromSeed(params Params, seed []byte) (*PrivateKey, *PublicKey) {
	bits := params.Bits()

	privKey := make([][2][]byte, bits)
	pubKey := make([][2][]byte, bits)
	for i := 0; i < bits; i++ {
		for b := 0; b < 2; b++ {
			block := keymat.DeriveKeyIndex(params.Config, seed, blockLabel, uint64(2*i+b))
			privKey[i][b] = block
			pubKey[i][b] = qhash.Sum(params.Config, block)
		}
	}

	return &PrivateKey{Params: params, Key: privKey},
		&PublicKey{Params: params, Key: pubKey}
}

// digestBit extracts bit i of the digest, most significant bit first.
func digestBit(digest []byte, i int) int {
	return int(digest[i/8]>>(7-i%8)) & 1
}

// Sign selects one private block per bit of the message digest. The
// selected blocks are copied so the signature does not alias the key.
func (sk *PrivateKey) Sign(message []byte) (*Signature, error) {
	bits := sk.Params.Bits()
	if len(sk.Key) != bits {
		return nil, fmt.Errorf("lamport: private key has %d block pairs, want %d", len(sk.Key), bits)
	}

	digest := qhash.Sum(sk.Params.Config, message)
	sig := make([][]byte, bits)
	for i := 0; i < bits; i++ {
		sig[i] = append([]byte(nil), sk.Key[i][digestBit(digest, i)]...)
	}
	return &Signature{Params: sk.Params, Blocks: sig}, nil
}

// Verify checks a signature against the message and public key. It
// fails closed: any shape mismatch, missing component or parameter
// disagreement returns false rather than an error, so a caller can
// never mistake a fault for a successful verification.
func (pk *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil {
		return false
	}
	// A hand-built key that skipped NewConfig must fail, not panic.
	if !pk.Params.Config.Valid() {
		return false
	}
	if !sig.Params.Config.Equal(pk.Params.Config) {
		return false
	}
	bits := pk.Params.Bits()
	if len(pk.Key) != bits || len(sig.Blocks) != bits {
		return false
	}

	digest := qhash.Sum(pk.Params.Config, message)
	for i := 0; i < bits; i++ {
		if sig.Blocks[i] == nil {
			return false
		}
		expected := pk.Key[i][digestBit(digest, i)]
		if !bytes.Equal(qhash.Sum(pk.Params.Config, sig.Blocks[i]), expected) {
			return false
		}
	}
	return true
}
