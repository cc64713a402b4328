package anon

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// PRNG is the keyed pseudorandom source shared by every mapper. It offers
// two independent facilities:
//
//   - A sequential uniform stream (UniformUint64, UniformBytes), consumed
//     in call order; the same Key replayed with calls in the same order
//     reproduces the same stream.
//   - A path-indexed bit oracle (Bit) whose output is a pure function of
//     (Key, path) only — it does not consume the sequential stream and is
//     independent of call order, which is what lets the IP trie cache a
//     node's flip bit and never recompute it.
//
// A PRNG is not safe for concurrent use.
type PRNG struct {
	stream    *chacha20.Cipher
	streamKey [chacha20.KeySize]byte
	pathKey   [sha256.Size]byte
}

// domain-separation labels for deriving independent sub-keys from one Key.
const (
	streamKeyLabel = "netanon-stream-v1"
	pathKeyLabel   = "netanon-path-v1"
)

// NewPRNG constructs a PRNG seeded from key. Two PRNGs seeded from
// byte-identical keys and driven with calls in the same order produce
// identical output, satisfying the determinism requirement that makes
// anonymization reproducible across runs.
func NewPRNG(key *Key) (*PRNG, error) {
	p := &PRNG{}
	if err := p.Seed(key); err != nil {
		return nil, err
	}
	return p, nil
}

// Seed (re-)seeds the PRNG from key, resetting the sequential stream to its
// initial position. This is the operation that makes a mapper's SetKey observable:
// without it, the generator's output would never depend on the caller's
// key, breaking the determinism property of section 8 of the design.
func (p *PRNG) Seed(key *Key) error {
	streamKey := derive(key.Bytes(), streamKeyLabel, chacha20.KeySize)
	copy(p.streamKey[:], streamKey)

	pathKey := derive(key.Bytes(), pathKeyLabel, sha256.Size)
	copy(p.pathKey[:], pathKey)

	var nonce [chacha20.NonceSize]byte // zero nonce: sub-key is unique per Key already
	stream, err := chacha20.NewUnauthenticatedCipher(p.streamKey[:], nonce[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	p.stream = stream
	return nil
}

// derive expands seed into n bytes by concatenating SHA-256 digests of
// seed || label || counter for counter = 0, 1, 2, .... The distinct labels
// keep the sequential-stream sub-key and the path-oracle sub-key
// cryptographically independent even though both come from one Key.
func derive(seed []byte, label string, n int) []byte {
	out := make([]byte, 0, n)
	var counter uint32
	for len(out) < n {
		h := sha256.New()
		h.Write(seed)
		h.Write([]byte(label))
		var c [4]byte
		binary.BigEndian.PutUint32(c[:], counter)
		h.Write(c[:])
		out = h.Sum(out)
		counter++
	}
	return out[:n]
}

// UniformBytes fills buf with bytes drawn from the sequential keystream.
func (p *PRNG) UniformBytes(buf []byte) {
	zero := make([]byte, len(buf))
	p.stream.XORKeyStream(buf, zero)
}

// UniformUint64 returns the next uniformly distributed uint64 from the
// sequential keystream.
func (p *PRNG) UniformUint64() uint64 {
	var b [8]byte
	p.UniformBytes(b[:])
	return binary.BigEndian.Uint64(b[:])
}

// RandomBit returns the next single pseudorandom bit from the sequential
// keystream.
func (p *PRNG) RandomBit() bool {
	var b [1]byte
	p.UniformBytes(b[:])
	return b[0]&1 == 1
}

// Bit returns the deterministic flip bit for the given bit path, encoded as
// the first pathLen bits (MSB first) of path. The result depends only on
// the PRNG's key and the path — never on call order or on bits of path
// beyond pathLen — which is exactly the property the IP trie relies on for
// prefix preservation.
func (p *PRNG) Bit(path []byte, pathLen int) bool {
	return p.oracle(path, pathLen, 0)
}

// tieBit is a second, independently-labeled oracle used by the trie to
// break ties when two subtrees carry an equal number of used markers; it
// must be distinguishable from Bit's output for the same path or the two
// decisions would be correlated.
func (p *PRNG) tieBit(path []byte, pathLen int) bool {
	return p.oracle(path, pathLen, 1)
}

func (p *PRNG) oracle(path []byte, pathLen int, domain byte) bool {
	h := sha256.New()
	h.Write(p.pathKey[:])
	h.Write([]byte{domain})
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(pathLen))
	h.Write(lenBuf[:])
	nbytes := (pathLen + 7) / 8
	if nbytes > len(path) {
		nbytes = len(path)
	}
	// Mask off any bits in the final byte beyond pathLen so the oracle
	// never observes bits past the declared prefix length.
	buf := make([]byte, nbytes)
	copy(buf, path[:nbytes])
	if rem := pathLen % 8; rem != 0 && nbytes > 0 {
		mask := byte(0xFF) << uint(8-rem)
		buf[nbytes-1] &= mask
	}
	h.Write(buf)
	digest := h.Sum(nil)
	return digest[0]&1 == 1
}
