package qhash

// HMAC computes the standard two-pass keyed construction over Sum:
//
//	HMAC(K, m) = Sum(K' ^ opad || Sum(K' ^ ipad || m))
//
// with the key padded (or first hashed) to the 64-byte block size. It
// is built only from Sum, so it inherits the engine's determinism and
// the configured variant, output length and domain tag.
func HMAC(cfg Config, key, data []byte) []byte {
	checkConfig(cfg)

	if len(key) > BlockSize {
		key = Sum(cfg, key)
	}
	var padded [BlockSize]byte
	copy(padded[:], key)

	inner := make([]byte, BlockSize, BlockSize+len(data))
	outer := make([]byte, BlockSize, BlockSize+cfg.OutputLength)
	for i := 0; i < BlockSize; i++ {
		inner[i] = padded[i] ^ 0x36
		outer[i] = padded[i] ^ 0x5c
	}

	innerSum := Sum(cfg, append(inner, data...))
	return Sum(cfg, append(outer, innerSum...))
}
