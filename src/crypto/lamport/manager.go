package lamport

import (
	"errors"
	"fmt"

	"github.com/dirac-core/go/src/crypto/keymat"
)

// ErrKeyUsed is returned when a keypair that already signed a message
// is asked to sign again.
var ErrKeyUsed = errors.New("lamport: keypair already used")

// KeyManager enforces the Unused -> Signed transition that the raw
// scheme leaves to the caller: each managed keypair signs at most one
// message, and a fresh keypair must be rotated in before the next
// signature.
type KeyManager struct {
	Params    Params
	rng       keymat.EntropySource
	currentSK *PrivateKey
	currentPK *PublicKey
	used      bool
}

// NewKeyManager generates an initial keypair under the given params.
func NewKeyManager(params Params, rng keymat.EntropySource) (*KeyManager, error) {
	sk, pk, err := GenerateKeyPair(params, rng)
	if err != nil {
		return nil, fmt.Errorf("lamport: failed to generate initial key pair: %w", err)
	}
	return &KeyManager{Params: params, rng: rng, currentSK: sk, currentPK: pk}, nil
}

// PublicKey returns the public key of the current keypair.
func (km *KeyManager) PublicKey() *PublicKey {
	return km.currentPK
}

// Sign signs with the current keypair and retires it. A second Sign
// without an intervening Rotate fails with ErrKeyUsed; the transition
// is irreversible for a given keypair.
func (km *KeyManager) Sign(message []byte) (*Signature, error) {
	if km.used {
		return nil, ErrKeyUsed
	}
	sig, err := km.currentSK.Sign(message)
	if err != nil {
		return nil, err
	}
	km.used = true
	return sig, nil
}

// Rotate generates a replacement keypair and returns its public key.
func (km *KeyManager) Rotate() (*PublicKey, error) {
	sk, pk, err := GenerateKeyPair(km.Params, km.rng)
	if err != nil {
		return nil, fmt.Errorf("lamport: failed to rotate key pair: %w", err)
	}
	km.currentSK = sk
	km.currentPK = pk
	km.used = false
	return pk, nil
}

// SignAndRotate signs with the current keypair and rotates in one
// step, returning the signature, the public key that verifies it, and
// the next public key.
func (km *KeyManager) SignAndRotate(message []byte) (*Signature, *PublicKey, *PublicKey, error) {
	sig, err := km.Sign(message)
	if err != nil {
		return nil, nil, nil, err
	}
	signedPK := km.currentPK
	nextPK, err := km.Rotate()
	if err != nil {
		return nil, nil, nil, err
	}
	return sig, signedPK, nextPK, nil
}
