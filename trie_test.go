package anon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_Trie_MapPrefix_CachesFlipBit confirms mapPrefix reuses a node's
// cached flip bit, by checking that flipSet is set after the first
// traversal and that a second call with the same address returns the same
// output.
func Test_Trie_MapPrefix_CachesFlipBit(t *testing.T) {
	is := assert.New(t)

	p, err := NewPRNG(keyFromText("trie-cache-key"))
	is.NoError(err)
	tr := newTrie(32)
	tr.prng = p

	addr := []byte{10, 0, 0, 1}
	out1, err := tr.mapPrefix(addr)
	is.NoError(err)
	is.True(tr.root.flipSet)

	out2, err := tr.mapPrefix(addr)
	is.NoError(err)
	is.Equal(out1, out2)
}

// Test_Trie_SetUsed_TracksUsedCount confirms usedCount accumulates along
// the full path to the root, which mapPrefixLex relies on to compare
// subtree density without a second traversal.
func Test_Trie_SetUsed_TracksUsedCount(t *testing.T) {
	is := assert.New(t)

	tr := newTrie(8)
	is.NoError(tr.setUsed([]byte{0b00000000}, 8))
	is.NoError(tr.setUsed([]byte{0b00000001}, 8))
	is.NoError(tr.setUsed([]byte{0b10000000}, 8))

	is.Equal(3, tr.root.usedCount)
}

// Test_Trie_MapPrefixLex_NotMarked confirms an address whose prefix was
// never passed to setUsed is rejected.
func Test_Trie_MapPrefixLex_NotMarked(t *testing.T) {
	is := assert.New(t)

	p, err := NewPRNG(keyFromText("trie-unmarked-key"))
	is.NoError(err)
	tr := newTrie(8)
	tr.prng = p

	_, err = tr.mapPrefixLex([]byte{0x01}, 8)
	is.ErrorIs(err, ErrNotMarked)
}

// Test_Trie_MapPrefixLex_PreservesOrder_BothChildrenUsed confirms the
// specific scenario a flip-based ordering rule gets wrong: once both
// children of a node carry used descendants, the raw bit must be kept so
// the two subtrees don't swap relative order. Two addresses that diverge
// at bit 5 with one marked descendant on each side must map to outputs in
// the same relative order as the inputs.
func Test_Trie_MapPrefixLex_PreservesOrder_BothChildrenUsed(t *testing.T) {
	is := assert.New(t)

	p, err := NewPRNG(keyFromText("both-children-key"))
	is.NoError(err)
	tr := newTrie(8)
	tr.prng = p

	lo := []byte{0b00000000} // bit 5 (0-indexed from MSB) is 0
	hi := []byte{0b00000100} // bit 5 is 1, shares bits 0-4 with lo

	is.NoError(tr.setUsed(lo, 8))
	is.NoError(tr.setUsed(hi, 8))

	outLo, err := tr.mapPrefixLex(lo, 8)
	is.NoError(err)
	outHi, err := tr.mapPrefixLex(hi, 8)
	is.NoError(err)

	is.True(bitsLess(outLo, outHi), "expected map(lo) < map(hi), got %08b and %08b", outLo[0], outHi[0])
}

func bitsLess(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Test_Trie_SetUsed_AfterMapPrefix_ModeConflict confirms setUsed is
// rejected once the trie has locked into NON_LEX mode.
func Test_Trie_SetUsed_AfterMapPrefix_ModeConflict(t *testing.T) {
	is := assert.New(t)

	p, err := NewPRNG(keyFromText("mode-key"))
	is.NoError(err)
	tr := newTrie(8)
	tr.prng = p

	_, err = tr.mapPrefix([]byte{0x01})
	is.NoError(err)

	err = tr.setUsed([]byte{0x02}, 8)
	is.ErrorIs(err, ErrModeConflict)
}

// Test_Trie_MapPrefixLex_AfterMapPrefix_ModeConflict confirms the two map
// modes cannot both be exercised on the same trie.
func Test_Trie_MapPrefixLex_AfterMapPrefix_ModeConflict(t *testing.T) {
	is := assert.New(t)

	p, err := NewPRNG(keyFromText("mode-key-2"))
	is.NoError(err)
	tr := newTrie(8)
	tr.prng = p

	_, err = tr.mapPrefix([]byte{0x01})
	is.NoError(err)

	_, err = tr.mapPrefixLex([]byte{0x01}, 8)
	is.ErrorIs(err, ErrModeConflict)
}

// Test_Trie_MapPrefix_AfterMapPrefixLex_ModeConflict confirms the
// conflict is symmetric.
func Test_Trie_MapPrefix_AfterMapPrefixLex_ModeConflict(t *testing.T) {
	is := assert.New(t)

	p, err := NewPRNG(keyFromText("mode-key-3"))
	is.NoError(err)
	tr := newTrie(8)
	tr.prng = p

	is.NoError(tr.setUsed([]byte{0x01}, 8))
	_, err = tr.mapPrefixLex([]byte{0x01}, 8)
	is.NoError(err)

	_, err = tr.mapPrefix([]byte{0x01})
	is.ErrorIs(err, ErrModeConflict)
}
