package qhash_test

import (
	"bytes"
	"encoding/hex"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qhash "github.com/dirac-core/go/src/qhash/hash"
)

var update = flag.Bool("update", false, "rewrite golden digest fixtures")

var allAlgorithms = []qhash.Algorithm{qhash.Base, qhash.EnhancedA, qhash.EnhancedB, qhash.Combined}

func mustConfig(t *testing.T, alg qhash.Algorithm, outLen int, tag []byte) qhash.Config {
	t.Helper()
	cfg, err := qhash.NewConfig(alg, outLen, tag)
	require.NoError(t, err)
	return cfg
}

func TestNewConfigValidation(t *testing.T) {
	t.Run("zero output length", func(t *testing.T) {
		_, err := qhash.NewConfig(qhash.Base, 0, nil)
		var cfgErr *qhash.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
	t.Run("output length over capacity", func(t *testing.T) {
		_, err := qhash.NewConfig(qhash.Base, qhash.MaxOutputLength+1, nil)
		var cfgErr *qhash.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := qhash.NewConfig(qhash.Algorithm(42), 32, nil)
		require.ErrorIs(t, err, qhash.ErrUnknownAlgorithm)
	})
	t.Run("bounds accepted", func(t *testing.T) {
		for _, n := range []int{qhash.MinOutputLength, 20, 32, qhash.MaxOutputLength} {
			cfg := mustConfig(t, qhash.Base, n, nil)
			assert.Len(t, qhash.Sum(cfg, []byte("x")), n)
		}
	})
}

func TestConfigValid(t *testing.T) {
	cfg := mustConfig(t, qhash.Base, 32, nil)
	assert.True(t, cfg.Valid())

	assert.False(t, qhash.Config{}.Valid())
	assert.False(t, qhash.Config{Algorithm: qhash.Base, OutputLength: qhash.MaxOutputLength + 1}.Valid())
	assert.False(t, qhash.Config{Algorithm: qhash.Algorithm(42), OutputLength: 32}.Valid())
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range allAlgorithms {
		parsed, err := qhash.ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, parsed)
	}
	_, err := qhash.ParseAlgorithm("grover-prime")
	require.ErrorIs(t, err, qhash.ErrUnknownAlgorithm)
}

func TestDomainTagCopied(t *testing.T) {
	tag := []byte("context-a")
	cfg := mustConfig(t, qhash.Base, 32, tag)
	before := qhash.Sum(cfg, []byte("message"))

	tag[0] = 'z' // caller mutates its slice after construction
	after := qhash.Sum(cfg, []byte("message"))
	assert.Equal(t, before, after)
}

func TestDeterminism(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("test"),
		[]byte("a slightly longer input that crosses one absorb block boundary......."),
		bytes.Repeat([]byte{0xff}, 4096),
	}
	for _, alg := range allAlgorithms {
		t.Run(alg.String(), func(t *testing.T) {
			cfg := mustConfig(t, alg, 32, nil)
			for _, in := range inputs {
				first := qhash.Sum(cfg, in)
				require.Len(t, first, 32)
				for i := 0; i < 10; i++ {
					assert.Equal(t, first, qhash.Sum(cfg, in))
				}
			}
			// An independently constructed equal config reaches the
			// same digests.
			cfg2 := mustConfig(t, alg, 32, nil)
			assert.Equal(t, qhash.Sum(cfg, []byte("test")), qhash.Sum(cfg2, []byte("test")))
		})
	}
}

func TestEmptyInputDefined(t *testing.T) {
	for _, alg := range allAlgorithms {
		cfg := mustConfig(t, alg, 32, nil)
		d := qhash.Sum(cfg, nil)
		require.Len(t, d, 32)
		assert.Equal(t, d, qhash.Sum(cfg, []byte{}))
		assert.NotEqual(t, d, qhash.Sum(cfg, []byte{0x00}), "empty input must differ from a single zero byte")
	}
}

func TestVariantSeparation(t *testing.T) {
	in := []byte("the same input under every pipeline")
	seen := make(map[string]qhash.Algorithm)
	for _, alg := range allAlgorithms {
		cfg := mustConfig(t, alg, 32, nil)
		d := string(qhash.Sum(cfg, in))
		if prev, dup := seen[d]; dup {
			t.Fatalf("algorithms %s and %s produced identical digests", prev, alg)
		}
		seen[d] = alg
	}
}

func TestDomainSeparation(t *testing.T) {
	in := []byte("payload")
	for _, alg := range allAlgorithms {
		plain := qhash.Sum(mustConfig(t, alg, 32, nil), in)
		tagged := qhash.Sum(mustConfig(t, alg, 32, []byte("proto-v1")), in)
		other := qhash.Sum(mustConfig(t, alg, 32, []byte("proto-v2")), in)
		assert.NotEqual(t, plain, tagged)
		assert.NotEqual(t, tagged, other)
	}
}

func TestLengthBinding(t *testing.T) {
	// The bit length is absorbed as the final block, so a message and
	// its zero-extended form must not share a digest.
	for _, alg := range allAlgorithms {
		cfg := mustConfig(t, alg, 32, nil)
		msg := []byte("abc")
		assert.NotEqual(t, qhash.Sum(cfg, msg), qhash.Sum(cfg, append(msg, 0x00)))
	}
}

// TestGoldenBase32 pins digest(Base, 32, "test") as a cross-version
// regression fixture. Run with -update to (re)write the fixture.
func TestGoldenBase32(t *testing.T) {
	cfg := mustConfig(t, qhash.Base, 32, nil)
	got := hex.EncodeToString(qhash.Sum(cfg, []byte("test")))

	golden := filepath.Join("testdata", "base-32.golden")
	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(golden), 0o755))
		require.NoError(t, os.WriteFile(golden, []byte(got+"\n"), 0o644))
	}
	want, err := os.ReadFile(golden)
	require.NoError(t, err, "golden fixture missing; run go test -run TestGoldenBase32 -update to regenerate")
	assert.Equal(t, string(bytes.TrimSpace(want)), got)
}

func TestHMAC(t *testing.T) {
	cfg := mustConfig(t, qhash.Base, 32, nil)
	key := []byte("a reasonable key")
	msg := []byte("authenticated payload")

	mac := qhash.HMAC(cfg, key, msg)
	require.Len(t, mac, 32)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, mac, qhash.HMAC(cfg, key, msg))
	})
	t.Run("key sensitivity", func(t *testing.T) {
		assert.NotEqual(t, mac, qhash.HMAC(cfg, []byte("a reasonable keY"), msg))
	})
	t.Run("message sensitivity", func(t *testing.T) {
		assert.NotEqual(t, mac, qhash.HMAC(cfg, key, []byte("authenticated payloae")))
	})
	t.Run("distinct from plain digest", func(t *testing.T) {
		assert.NotEqual(t, qhash.Sum(cfg, msg), mac)
	})
	t.Run("oversize key is hashed down", func(t *testing.T) {
		long := bytes.Repeat([]byte{0xab}, qhash.BlockSize*3)
		first := qhash.HMAC(cfg, long, msg)
		assert.Equal(t, first, qhash.HMAC(cfg, long, msg))
		assert.NotEqual(t, mac, first)
	})
	t.Run("variant follows config", func(t *testing.T) {
		other := mustConfig(t, qhash.Combined, 32, nil)
		assert.NotEqual(t, mac, qhash.HMAC(other, key, msg))
	})
}

func BenchmarkSum(b *testing.B) {
	data := bytes.Repeat([]byte{0x5a}, 1024)
	for _, alg := range allAlgorithms {
		cfg, err := qhash.NewConfig(alg, 32, nil)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(alg.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				qhash.Sum(cfg, data)
			}
		})
	}
}
