package anon

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

type lifecycle int

const (
	lifecycleInit lifecycle = iota
	lifecycleNonLex
	lifecycleLex
)

// BoundedIntMapper assigns each distinct input value it sees an output
// value drawn from [lower, upper], optionally preserving the numeric
// ordering of a pre-declared used set. T is constrained to the integer
// types (instantiated here as int64 and uint64 via Int64Mapper and
// Uint64Mapper).
//
// Like every mapper in this package, a BoundedIntMapper starts in mode
// INIT, accepts SetUsed calls only in that mode, and is locked into
// exactly one of NON_LEX (first Map call) or LEX (first MapLex call) for
// the rest of its lifetime.
type BoundedIntMapper[T constraints.Integer] struct {
	lower, upper T
	width        uint64 // upper-lower+1 mod 2^64; 0 means the full 2^64 domain

	prng *PRNG
	mode lifecycle

	used        []T            // deduplicated used-set in SetUsed order; sorted at finalization
	usedSeen    map[T]struct{} // dedup guard for used/INIT-phase inserts
	mapping     map[T]T        // input -> output, populated lazily (NON_LEX) or at finalization (LEX)
	outputsUsed map[T]struct{} // NON_LEX only: outputs already issued
}

// NewBoundedIntMapper constructs a mapper over the inclusive range
// [lower, upper]. lower must not exceed upper.
func NewBoundedIntMapper[T constraints.Integer](lower, upper T) (*BoundedIntMapper[T], error) {
	if lower > upper {
		return nil, ErrInvalidRange
	}
	width := uint64(upper) - uint64(lower) + 1
	return &BoundedIntMapper[T]{
		lower:       lower,
		upper:       upper,
		width:       width,
		usedSeen:    make(map[T]struct{}),
		mapping:     make(map[T]T),
		outputsUsed: make(map[T]struct{}),
	}, nil
}

// SetKey configures the mapper's PRNG from key. key is cloned by value.
func (m *BoundedIntMapper[T]) SetKey(key *Key) error {
	cloned := key.clone()
	p, err := NewPRNG(&cloned)
	if err != nil {
		return err
	}
	m.prng = p
	return nil
}

// SetUsed declares v as part of the used set that MapLex will later
// preserve the order of. Only legal while the mapper is still in INIT.
func (m *BoundedIntMapper[T]) SetUsed(v T) error {
	if m.mode != lifecycleInit {
		return fmt.Errorf("%w: SetUsed after first Map/MapLex", ErrModeConflict)
	}
	if _, ok := m.usedSeen[v]; ok {
		return nil
	}
	m.usedSeen[v] = struct{}{}
	m.used = append(m.used, v)
	return nil
}

// uniformBelow draws a uniformly distributed value in [0, bound); bound==0
// is treated as the full 2^64 domain, matching the wraparound convention
// used for width.
func (m *BoundedIntMapper[T]) uniformBelow(bound uint64) uint64 {
	r := m.prng.UniformUint64()
	if bound == 0 {
		return r
	}
	return r % bound
}

func (m *BoundedIntMapper[T]) sampleUniform() T {
	offset := m.uniformBelow(m.width)
	return T(uint64(m.lower) + offset)
}

// Map returns v's anonymized image, preserving neither order nor any
// relationship to other inputs beyond pairwise distinctness. The first
// call to either Map or MapLex locks the mapper into that mode.
func (m *BoundedIntMapper[T]) Map(v T) (T, error) {
	if m.mode == lifecycleLex {
		return 0, fmt.Errorf("%w: Map after MapLex", ErrModeConflict)
	}
	m.mode = lifecycleNonLex

	if out, ok := m.mapping[v]; ok {
		return out, nil
	}

	const maxAttempts = 1 << 20
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if m.width != 0 && uint64(len(m.outputsUsed)) >= m.width {
			return 0, fmt.Errorf("%w: all %d values in range issued", ErrRangeExhausted, m.width)
		}
		candidate := m.sampleUniform()
		if _, taken := m.outputsUsed[candidate]; taken {
			continue
		}
		m.outputsUsed[candidate] = struct{}{}
		m.mapping[v] = candidate
		return candidate, nil
	}
	return 0, fmt.Errorf("%w: could not find a free output after %d attempts", ErrRangeExhausted, maxAttempts)
}

// MapLex returns v's anonymized image under the lex-order-preserving mode.
// v must have been declared via SetUsed before this mapper's first MapLex
// call, or ErrNotMarked is returned. On the first call, the mapper
// finalizes: it draws len(used-set) distinct images from [lower, upper],
// sorts them, and pairs them one-to-one with the sorted used set.
func (m *BoundedIntMapper[T]) MapLex(v T) (T, error) {
	if m.mode == lifecycleNonLex {
		return 0, fmt.Errorf("%w: MapLex after Map", ErrModeConflict)
	}
	if m.mode == lifecycleInit {
		if err := m.finalize(); err != nil {
			return 0, err
		}
		m.mode = lifecycleLex
	}
	out, ok := m.mapping[v]
	if !ok {
		return 0, ErrNotMarked
	}
	return out, nil
}

func (m *BoundedIntMapper[T]) finalize() error {
	slices.Sort(m.used)
	n := uint64(len(m.used))
	if m.width != 0 && n > m.width {
		return fmt.Errorf("%w: %d used values do not fit in range of size %d", ErrRangeExhausted, n, m.width)
	}

	images := m.drawDistinct(n)
	for i, v := range m.used {
		m.mapping[v] = T(uint64(m.lower) + images[i])
	}
	return nil
}

// drawDistinct draws n distinct offsets from [0, width) using Floyd's
// algorithm for sampling without replacement, then sorts them ascending.
// Floyd's algorithm runs in O(n) expected time regardless of how densely
// the used set populates the range, which is the reservoir-style
// construction the design notes call for to bound the re-draw loop under
// near-exhausted ranges.
func (m *BoundedIntMapper[T]) drawDistinct(n uint64) []uint64 {
	chosen := make(map[uint64]struct{}, n)
	result := make([]uint64, 0, n)

	start := m.width - n // wraps correctly when m.width == 0 (full 2^64 domain)
	for i := uint64(0); i < n; i++ {
		j := start + i
		t := m.uniformBelow(j + 1) // j+1 wraps to 0 only when j is the max uint64, handled by uniformBelow
		if _, ok := chosen[t]; ok {
			chosen[j] = struct{}{}
			result = append(result, j)
		} else {
			chosen[t] = struct{}{}
			result = append(result, t)
		}
	}
	slices.Sort(result)
	return result
}
