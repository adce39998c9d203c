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

// Package hypertree amortizes one-time signatures into a stateless,
// multi-use scheme: 2^H leaf keypairs derived on demand from one seed,
// authenticated by a Merkle tree whose root is the long-term public
// key. Key generation is O(2^H) digests; signing and verification are
// O(H + L).
package hypertree

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dirac-core/go/src/crypto/keymat"
	"github.com/dirac-core/go/src/crypto/lamport"
	logger "github.com/dirac-core/go/src/log"
	qhash "github.com/dirac-core/go/src/qhash/hash"
	"github.com/dirac-core/go/src/qhash/metrics"
)

// leafLabel namespaces per-leaf seed derivation under the master seed.
var leafLabel = []byte("hypertree-leaf")

// ProgressFunc receives leaf-generation progress during key
// generation. It may be called from multiple goroutines.
type ProgressFunc func(done, total uint64)

// GenOptions tunes key generation. The zero value (or nil) is valid:
// GOMAXPROCS workers, no progress hook, no metrics.
type GenOptions struct {
	Progress ProgressFunc
	Metrics  *metrics.Metrics
	Workers  int
}

// leafSeed derives the deterministic seed for leaf j from the master
// seed.
func leafSeed(cfg qhash.Config, seed []byte, j uint64) []byte {
	return keymat.DeriveKeyIndex(cfg, seed, leafLabel, j)
}

// deriveLeaf re-derives leaf j's one-time keypair from the master seed.
func deriveLeaf(params Params, seed []byte, j uint64) *leafPair {
	sk, pk := lamport.GenerateKeyPairFromSeed(lamport.NewParams(params.Config), leafSeed(params.Config, seed, j))
	return &leafPair{sk: sk, pk: pk}
}

// leafHash commits to a full one-time public key: the digest of all
// 2·L public blocks in position order.
func leafHash(cfg qhash.Config, pk *lamport.PublicKey) []byte {
	buf := make([]byte, 0, 2*len(pk.Key)*cfg.OutputLength)
	for i := range pk.Key {
		buf = append(buf, pk.Key[i][0]...)
		buf = append(buf, pk.Key[i][1]...)
	}
	return qhash.Sum(cfg, buf)
}

// GenerateKeyPair builds the full tree from seed: 2^H leaf keypairs
// derived in parallel, leaf hashes placed into an array-indexed
// complete binary tree, and internal nodes folded bottom-up with
// parent = Sum(left || right). The root becomes the public key; the
// private key keeps the seed and the node arena.
//
// Cost is O(2^H) digest operations. Leaf derivation is fanned out over
// opts.Workers goroutines and checks ctx between leaves, so a
// long-running generation can be cancelled cleanly.
func GenerateKeyPair(ctx context.Context, params Params, seed []byte, opts *GenOptions) (*PrivateKey, *PublicKey, error) {
	if len(seed) == 0 {
		return nil, nil, fmt.Errorf("hypertree: empty seed")
	}
	if opts == nil {
		opts = &GenOptions{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	leaves := params.Leaves()
	leafOffset := leaves - 1
	nodes := make([][]byte, 2*leaves-1)

	logger.Debugf("hypertree: generating %d leaves (height %d, %d workers)", leaves, params.Height, workers)
	start := time.Now()

	var done atomic.Uint64
	g, gctx := errgroup.WithContext(ctx)
	chunk := (leaves + uint64(workers) - 1) / uint64(workers)
	for w := uint64(0); w < leaves; w += chunk {
		lo, hi := w, w+chunk
		if hi > leaves {
			hi = leaves
		}
		g.Go(func() error {
			for j := lo; j < hi; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				pair := deriveLeaf(params, seed, j)
				nodes[leafOffset+j] = leafHash(params.Config, pair.pk)
				n := done.Add(1)
				if opts.Metrics != nil {
					opts.Metrics.LeavesGenerated.Inc()
				}
				if opts.Progress != nil {
					opts.Progress(n, leaves)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("hypertree: key generation aborted: %w", err)
	}

	// Fold internal nodes bottom-up; children of i sit at 2i+1, 2i+2.
	for i := int(leafOffset) - 1; i >= 0; i-- {
		left, right := nodes[2*i+1], nodes[2*i+2]
		buf := make([]byte, 0, len(left)+len(right))
		buf = append(buf, left...)
		buf = append(buf, right...)
		nodes[i] = qhash.Sum(params.Config, buf)
	}

	elapsed := time.Since(start)
	if opts.Metrics != nil {
		opts.Metrics.TreeBuildSeconds.Observe(elapsed.Seconds())
	}
	logger.Infof("hypertree: built %d-leaf tree in %s", leaves, elapsed)

	sk := &PrivateKey{
		Params:    params,
		Seed:      append([]byte(nil), seed...),
		nodes:     nodes,
		leafCache: newLeafCache(defaultLeafCacheSize),
		metrics:   opts.Metrics,
	}
	pk := &PublicKey{
		Params: params,
		Root:   append([]byte(nil), nodes[0]...),
	}
	return sk, pk, nil
}
