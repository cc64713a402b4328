package anon

import (
	"bytes"
	"fmt"
	"slices"
)

// octetImageLen is the length, in bytes, of every synthesized output
// image. A fixed length (rather than matching each input's length) keeps
// the codomain's size independent of the input alphabet and gives
// 2^(8*octetImageLen) possible images, which is large enough that the
// resample loop below practically never collides; per spec.md §4.5 the
// only hard requirements are injectivity, determinism, and (in lex mode)
// order preservation, all of which fixed-length random images satisfy.
const octetImageLen = 16

// OctetStringMapper assigns each distinct byte-string input it sees a
// synthesized byte-string output, optionally preserving the lexicographic
// ordering of a pre-declared used set. It follows the same two-phase
// lifecycle as BoundedIntMapper.
type OctetStringMapper struct {
	prng *PRNG
	mode lifecycle

	used        [][]byte
	usedSeen    map[string]struct{}
	mapping     map[string][]byte
	outputsUsed map[string]struct{}
}

// NewOctetStringMapper returns a new, unkeyed octet-string mapper.
func NewOctetStringMapper() *OctetStringMapper {
	return &OctetStringMapper{
		usedSeen:    make(map[string]struct{}),
		mapping:     make(map[string][]byte),
		outputsUsed: make(map[string]struct{}),
	}
}

// SetKey configures the mapper's PRNG from key. key is cloned by value.
func (m *OctetStringMapper) SetKey(key *Key) error {
	cloned := key.clone()
	p, err := NewPRNG(&cloned)
	if err != nil {
		return err
	}
	m.prng = p
	return nil
}

// SetUsed declares v as part of the used set. Only legal while the mapper
// is still in INIT.
func (m *OctetStringMapper) SetUsed(v []byte) error {
	if m.mode != lifecycleInit {
		return fmt.Errorf("%w: SetUsed after first Map/MapLex", ErrModeConflict)
	}
	key := string(v)
	if _, ok := m.usedSeen[key]; ok {
		return nil
	}
	m.usedSeen[key] = struct{}{}
	m.used = append(m.used, append([]byte(nil), v...))
	return nil
}

func (m *OctetStringMapper) randomImage() []byte {
	buf := make([]byte, octetImageLen)
	m.prng.UniformBytes(buf)
	return buf
}

// Map returns v's anonymized image without any ordering guarantee.
func (m *OctetStringMapper) Map(v []byte) ([]byte, error) {
	if m.mode == lifecycleLex {
		return nil, fmt.Errorf("%w: Map after MapLex", ErrModeConflict)
	}
	m.mode = lifecycleNonLex

	key := string(v)
	if out, ok := m.mapping[key]; ok {
		return out, nil
	}

	const maxAttempts = 1 << 20
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := m.randomImage()
		ckey := string(candidate)
		if _, taken := m.outputsUsed[ckey]; taken {
			continue
		}
		m.outputsUsed[ckey] = struct{}{}
		m.mapping[key] = candidate
		return candidate, nil
	}
	return nil, fmt.Errorf("%w: could not find a free output after %d attempts", ErrRangeExhausted, maxAttempts)
}

// MapLex returns v's anonymized image under the lex-order-preserving mode.
// v must have been declared via SetUsed before this mapper's first MapLex
// call. On the first call, the mapper draws len(used-set) distinct random
// images, sorts them lexicographically, and pairs them one-to-one with the
// sorted used set.
func (m *OctetStringMapper) MapLex(v []byte) ([]byte, error) {
	if m.mode == lifecycleNonLex {
		return nil, fmt.Errorf("%w: MapLex after Map", ErrModeConflict)
	}
	if m.mode == lifecycleInit {
		m.finalize()
		m.mode = lifecycleLex
	}
	out, ok := m.mapping[string(v)]
	if !ok {
		return nil, ErrNotMarked
	}
	return out, nil
}

func (m *OctetStringMapper) finalize() {
	slices.SortFunc(m.used, bytes.Compare)

	images := make([][]byte, len(m.used))
	seen := make(map[string]struct{}, len(m.used))
	for i := range images {
		for {
			candidate := m.randomImage()
			ckey := string(candidate)
			if _, dup := seen[ckey]; dup {
				continue
			}
			seen[ckey] = struct{}{}
			images[i] = candidate
			break
		}
	}
	slices.SortFunc(images, bytes.Compare)

	for i, v := range m.used {
		m.mapping[string(v)] = images[i]
	}
}
