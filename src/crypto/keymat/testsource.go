package keymat

import (
	qhash "github.com/dirac-core/go/src/qhash/hash"
)

// DeterministicSource expands a label into a reproducible byte stream
// via counter-mode hashing. It exists so tests and reference vectors
// can use fixed, labeled key material; production key generation must
// use OSEntropy. It is not an EntropySource in anything but type.
type DeterministicSource struct {
	cfg     qhash.Config
	label   []byte
	counter uint64
	buf     []byte
}

var streamLabel = []byte("keymat-stream")

// NewDeterministicSource creates a source whose output is a pure
// function of label.
func NewDeterministicSource(label string) *DeterministicSource {
	cfg, err := qhash.NewConfig(qhash.Base, 32, []byte("keymat-test-source"))
	if err != nil {
		panic(err)
	}
	return &DeterministicSource{cfg: cfg, label: []byte(label)}
}

// Read implements io.Reader and never fails.
func (s *DeterministicSource) Read(p []byte) (int, error) {
	n := len(p)
	for len(s.buf) < n {
		s.buf = append(s.buf, DeriveKeyIndex(s.cfg, s.label, streamLabel, s.counter)...)
		s.counter++
	}
	copy(p, s.buf[:n])
	s.buf = s.buf[n:]
	return n, nil
}
