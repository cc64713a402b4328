package anon

import (
	"crypto/sha256"
	"fmt"
	"io"

	prng "github.com/sixafter/prng-chacha"
)

// KeySize is the length in bytes of a Key's key material.
const KeySize = 32

// Key holds fixed-length symmetric key material used to seed every mapper's
// PRNG. A Key is opaque: the only way to read it back out is Bytes, and
// mappers clone it by value at SetKey time so that later changes to the
// original Key never affect a mapper already configured.
type Key struct {
	buf [KeySize]byte
	set bool
}

// NewKey returns an empty, unseeded Key. Call SetRandom or SetPassphrase
// before passing it to a mapper's SetKey.
func NewKey() *Key {
	return &Key{}
}

// SetRandom fills the key with bytes drawn from a cryptographically secure
// source (the pooled ChaCha20 reader from github.com/sixafter/prng-chacha).
func (k *Key) SetRandom() error {
	if _, err := io.ReadFull(prng.Reader, k.buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	k.set = true
	return nil
}

// SetPassphrase derives the key deterministically from text via an iterated
// SHA-256 hash chain: block i is SHA256(block i-1 || counter || text), and
// the key buffer is filled block by block until full. The same text always
// yields the same key.
func (k *Key) SetPassphrase(text string) {
	var block [sha256.Size]byte
	var counter byte
	filled := 0
	for filled < KeySize {
		h := sha256.New()
		h.Write(block[:])
		h.Write([]byte{counter})
		h.Write([]byte(text))
		h.Sum(block[:0])
		n := copy(k.buf[filled:], block[:])
		filled += n
		counter++
	}
	k.set = true
}

// Bytes returns a copy of the key material.
func (k *Key) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, k.buf[:])
	return out
}

// IsSet reports whether the key has been seeded via SetRandom or
// SetPassphrase.
func (k *Key) IsSet() bool {
	return k.set
}

// Zero overwrites the key material with zeros. A zeroed Key must not be
// reused to seed a mapper.
func (k *Key) Zero() {
	for i := range k.buf {
		k.buf[i] = 0
	}
	k.set = false
}

// clone returns a deep copy of the key, used by SetKey so that mutating the
// caller's Key after configuring a mapper has no effect on the mapper.
func (k *Key) clone() Key {
	var c Key
	c.buf = k.buf
	c.set = k.set
	return c
}
