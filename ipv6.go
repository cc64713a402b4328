package anon

import "net/netip"

// IPv6Mapper anonymizes IPv6 addresses with the same prefix- and
// lex-order-preservation contract as IPv4Mapper, operating over the full
// 128-bit address.
type IPv6Mapper struct {
	t   *trie
	key *Key
}

// NewIPv6Mapper returns a new, unkeyed IPv6 mapper. SetKey must be called
// before MapPrefix or MapPrefixLex.
func NewIPv6Mapper() *IPv6Mapper {
	return &IPv6Mapper{t: newTrie(128)}
}

// SetKey configures the mapper's PRNG from key. key is cloned by value.
func (m *IPv6Mapper) SetKey(key *Key) error {
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
// the mapper is still in INIT; calling it after the first MapPrefix or
// MapPrefixLex call returns ErrModeConflict.
func (m *IPv6Mapper) SetUsed(addr netip.Addr, prefixLen int) error {
	if !addr.Is6() || addr.Is4In6() {
		return ErrInvalidRange
	}
	b := addr.As16()
	return m.t.setUsed(b[:], prefixLen)
}

// MapPrefix anonymizes addr, preserving shared prefixes. The first call to
// either MapPrefix or MapPrefixLex locks the mapper into that mode; calling
// the other one afterward returns ErrModeConflict.
func (m *IPv6Mapper) MapPrefix(addr netip.Addr) (netip.Addr, error) {
	if !addr.Is6() || addr.Is4In6() {
		return netip.Addr{}, ErrInvalidRange
	}
	b := addr.As16()
	out, err := m.t.mapPrefix(b[:])
	if err != nil {
		return netip.Addr{}, err
	}
	var arr [16]byte
	copy(arr[:], out)
	return netip.AddrFrom16(arr), nil
}

// MapPrefixLex anonymizes addr, additionally preserving the numeric
// ordering of every address previously declared via SetUsed(addr, 128).
// Locks the mapper into LEX mode; a later MapPrefix call returns
// ErrModeConflict.
func (m *IPv6Mapper) MapPrefixLex(addr netip.Addr) (netip.Addr, error) {
	if !addr.Is6() || addr.Is4In6() {
		return netip.Addr{}, ErrInvalidRange
	}
	b := addr.As16()
	out, err := m.t.mapPrefixLex(b[:], 128)
	if err != nil {
		return netip.Addr{}, err
	}
	var arr [16]byte
	copy(arr[:], out)
	return netip.AddrFrom16(arr), nil
}

// NodesCount returns the current number of trie nodes allocated by this
// mapper.
func (m *IPv6Mapper) NodesCount() int {
	return m.t.nodeCount
}
