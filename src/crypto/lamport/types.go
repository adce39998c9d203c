package lamport

// PrivateKey holds 2·L random blocks, one pair per digest bit
// position. It is consumed by at most one Sign call; single use is a
// caller contract, enforced only when going through KeyManager.
type PrivateKey struct {
	Params Params
	Key    [][2][]byte // L pairs of random blocks
}

// PublicKey holds the per-block digests of the private key blocks.
type PublicKey struct {
	Params Params
	Key    [][2][]byte // L pairs of digest blocks
}

// Signature holds L blocks, one private block selected per bit of the
// message digest. Signing is pure selection and involves no hashing
// beyond the message digest itself.
type Signature struct {
	Params Params
	Blocks [][]byte
}
