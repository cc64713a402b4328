package anon

import "net/netip"

// IPv4Mapper anonymizes IPv4 addresses, preserving shared prefixes (see
// MapPrefix) and optionally preserving the numeric ordering of a
// pre-declared set of addresses (see MapPrefixLex).
//
// The zero value is not usable; construct with NewIPv4Mapper.
type IPv4Mapper struct {
	t   *trie
	key *Key
}

// NewIPv4Mapper returns a new, unkeyed IPv4 mapper. SetKey must be called
// before MapPrefix or MapPrefixLex.
func NewIPv4Mapper() *IPv4Mapper {
	return &IPv4Mapper{t: newTrie(32)}
}

// SetKey configures the mapper's PRNG from key. key is cloned by value;
// later mutation of the caller's Key does not affect this mapper.
func (m *IPv4Mapper) SetKey(key *Key) error {
	cloned := key.clone()
	p, err := NewPRNG(&cloned)
	if err != nil {
		return err
	}
	m.t.prng = p
	m.key = &cloned
	return nil
}

// SetUsed marks addr's length-prefixLen prefix as used. Only legal while
// the mapper is still in INIT, i.e. before the first MapPrefix or
// MapPrefixLex call; required before MapPrefixLex will accept addr.
// Calling it after either has run returns ErrModeConflict.
func (m *IPv4Mapper) SetUsed(addr netip.Addr, prefixLen int) error {
	if !addr.Is4() {
		return ErrInvalidRange
	}
	b := addr.As4()
	return m.t.setUsed(b[:], prefixLen)
}

// MapPrefix anonymizes addr, preserving any n-bit prefix addr shares with
// any other address passed to this mapper. The first call to either
// MapPrefix or MapPrefixLex locks the mapper into that mode; calling the
// other one afterward returns ErrModeConflict.
func (m *IPv4Mapper) MapPrefix(addr netip.Addr) (netip.Addr, error) {
	if !addr.Is4() {
		return netip.Addr{}, ErrInvalidRange
	}
	b := addr.As4()
	out, err := m.t.mapPrefix(b[:])
	if err != nil {
		return netip.Addr{}, err
	}
	var arr [4]byte
	copy(arr[:], out)
	return netip.AddrFrom4(arr), nil
}

// MapPrefixLex anonymizes addr, preserving both prefix sharing and the
// numeric ordering of every address previously declared via SetUsed. addr
// must have been marked with SetUsed(addr, 32) or this returns
// ErrNotMarked. Locks the mapper into LEX mode; a later MapPrefix call
// returns ErrModeConflict.
func (m *IPv4Mapper) MapPrefixLex(addr netip.Addr) (netip.Addr, error) {
	if !addr.Is4() {
		return netip.Addr{}, ErrInvalidRange
	}
	b := addr.As4()
	out, err := m.t.mapPrefixLex(b[:], 32)
	if err != nil {
		return netip.Addr{}, err
	}
	var arr [4]byte
	copy(arr[:], out)
	return netip.AddrFrom4(arr), nil
}

// NodesCount returns the current number of trie nodes allocated by this
// mapper, for resource-usage reporting.
func (m *IPv4Mapper) NodesCount() int {
	return m.t.nodeCount
}
