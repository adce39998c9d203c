package lamport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirac-core/go/src/crypto/keymat"
	"github.com/dirac-core/go/src/crypto/lamport"
	qhash "github.com/dirac-core/go/src/qhash/hash"
)

func testParams(t *testing.T, alg qhash.Algorithm) lamport.Params {
	t.Helper()
	cfg, err := qhash.NewConfig(alg, 32, nil)
	require.NoError(t, err)
	return lamport.NewParams(cfg)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, alg := range []qhash.Algorithm{qhash.Base, qhash.Combined} {
		t.Run(alg.String(), func(t *testing.T) {
			params := testParams(t, alg)
			sk, pk, err := lamport.GenerateKeyPair(params, keymat.NewDeterministicSource("lamport-roundtrip"))
			require.NoError(t, err)
			require.Len(t, sk.Key, params.Bits())
			require.Len(t, pk.Key, params.Bits())

			msg := []byte("sign me once")
			sig, err := sk.Sign(msg)
			require.NoError(t, err)
			require.Len(t, sig.Blocks, params.Bits())

			assert.True(t, pk.Verify(msg, sig))
			// Verification is stateless and repeatable.
			assert.True(t, pk.Verify(msg, sig))
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	params := testParams(t, qhash.Base)
	sk, pk, err := lamport.GenerateKeyPair(params, keymat.NewDeterministicSource("lamport-rejects"))
	require.NoError(t, err)

	msg := []byte("original message")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)

	t.Run("different message", func(t *testing.T) {
		assert.False(t, pk.Verify([]byte("original messagf"), sig))
	})
	t.Run("tampered signature block", func(t *testing.T) {
		tampered := &lamport.Signature{Params: sig.Params, Blocks: make([][]byte, len(sig.Blocks))}
		for i, b := range sig.Blocks {
			tampered.Blocks[i] = append([]byte(nil), b...)
		}
		tampered.Blocks[17][3] ^= 0x01
		assert.False(t, pk.Verify(msg, tampered))
	})
	t.Run("truncated signature", func(t *testing.T) {
		short := &lamport.Signature{Params: sig.Params, Blocks: sig.Blocks[:len(sig.Blocks)-1]}
		assert.False(t, pk.Verify(msg, short))
	})
	t.Run("nil signature", func(t *testing.T) {
		assert.False(t, pk.Verify(msg, nil))
	})
	t.Run("nil block", func(t *testing.T) {
		holed := &lamport.Signature{Params: sig.Params, Blocks: make([][]byte, len(sig.Blocks))}
		copy(holed.Blocks, sig.Blocks)
		holed.Blocks[0] = nil
		assert.False(t, pk.Verify(msg, holed))
	})
}

// Verifying under a config other than the one the keypair was
// generated with must return false, never panic, never succeed.
func TestVerifyConfigMismatch(t *testing.T) {
	params := testParams(t, qhash.Base)
	sk, pk, err := lamport.GenerateKeyPair(params, keymat.NewDeterministicSource("lamport-config"))
	require.NoError(t, err)

	msg := []byte("config sensitivity")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.True(t, pk.Verify(msg, sig))

	t.Run("mismatched verifier params", func(t *testing.T) {
		other := &lamport.PublicKey{Params: testParams(t, qhash.EnhancedA), Key: pk.Key}
		assert.False(t, other.Verify(msg, sig))
	})
	t.Run("mismatched signature params", func(t *testing.T) {
		resigned := &lamport.Signature{Params: testParams(t, qhash.EnhancedB), Blocks: sig.Blocks}
		assert.False(t, pk.Verify(msg, resigned))
	})
	t.Run("mismatched domain tag", func(t *testing.T) {
		cfg, err := qhash.NewConfig(qhash.Base, 32, []byte("other-context"))
		require.NoError(t, err)
		other := &lamport.PublicKey{Params: lamport.NewParams(cfg), Key: pk.Key}
		assert.False(t, other.Verify(msg, sig))
	})
	t.Run("hand-built invalid config", func(t *testing.T) {
		// A key whose Config never went through NewConfig (zero value
		// here) must read as a failed verification, not a panic.
		bad := &lamport.PublicKey{}
		assert.False(t, bad.Verify(msg, sig))
		assert.False(t, bad.Verify(msg, &lamport.Signature{}))
	})
}

func TestGenerateKeyPairFromSeed(t *testing.T) {
	params := testParams(t, qhash.Base)
	seed := []byte("a 32 byte deterministic seed....")

	sk1, pk1 := lamport.GenerateKeyPairFromSeed(params, seed)
	sk2, pk2 := lamport.GenerateKeyPairFromSeed(params, seed)
	assert.Equal(t, sk1.Key, sk2.Key)
	assert.Equal(t, pk1.Key, pk2.Key)

	_, pk3 := lamport.GenerateKeyPairFromSeed(params, []byte("a different deterministic seed.."))
	assert.NotEqual(t, pk1.Key, pk3.Key)

	msg := []byte("seeded keypairs sign like any other")
	sig, err := sk1.Sign(msg)
	require.NoError(t, err)
	assert.True(t, pk2.Verify(msg, sig))
}

func TestKeyManagerSingleUse(t *testing.T) {
	params := testParams(t, qhash.Base)
	km, err := lamport.NewKeyManager(params, keymat.NewDeterministicSource("lamport-manager"))
	require.NoError(t, err)

	firstPK := km.PublicKey()
	msg := []byte("first and only message for this keypair")

	sig, err := km.Sign(msg)
	require.NoError(t, err)
	assert.True(t, firstPK.Verify(msg, sig))

	_, err = km.Sign([]byte("second message"))
	require.ErrorIs(t, err, lamport.ErrKeyUsed)

	nextPK, err := km.Rotate()
	require.NoError(t, err)
	assert.NotEqual(t, firstPK.Key, nextPK.Key)

	sig2, err := km.Sign([]byte("second message"))
	require.NoError(t, err)
	assert.True(t, nextPK.Verify([]byte("second message"), sig2))
	assert.False(t, firstPK.Verify([]byte("second message"), sig2))
}

func TestKeyManagerSignAndRotate(t *testing.T) {
	params := testParams(t, qhash.Base)
	km, err := lamport.NewKeyManager(params, keymat.NewDeterministicSource("lamport-rotate"))
	require.NoError(t, err)

	msg := []byte("rotate after signing")
	sig, signedPK, nextPK, err := km.SignAndRotate(msg)
	require.NoError(t, err)
	assert.True(t, signedPK.Verify(msg, sig))
	assert.Equal(t, nextPK, km.PublicKey())

	// The rotated-in keypair is fresh and usable.
	sig2, err := km.Sign([]byte("next message"))
	require.NoError(t, err)
	assert.True(t, nextPK.Verify([]byte("next message"), sig2))
}
