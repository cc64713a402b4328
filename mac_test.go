package anon

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newMACMapperForTest(t *testing.T, passphrase string) *MACMapper {
	t.Helper()
	m := NewMACMapper()
	if err := m.SetKey(keyFromText(passphrase)); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	return m
}

// Test_MACMapper_Map_Deterministic confirms the same MAC maps to the same
// image under the same key.
func Test_MACMapper_Map_Deterministic(t *testing.T) {
	is := assert.New(t)

	mac, err := net.ParseMAC("00:11:22:33:44:55")
	is.NoError(err)

	m1 := newMACMapperForTest(t, "mac-key")
	m2 := newMACMapperForTest(t, "mac-key")

	out1, err := m1.Map(mac)
	is.NoError(err)
	out2, err := m2.Map(mac)
	is.NoError(err)
	is.Equal(out1, out2)
}

// Test_MACMapper_Map_SixBytes confirms the output is always a 6-byte
// hardware address.
func Test_MACMapper_Map_SixBytes(t *testing.T) {
	is := assert.New(t)

	mac, err := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	is.NoError(err)

	m := newMACMapperForTest(t, "len-key")
	out, err := m.Map(mac)
	is.NoError(err)
	is.Len(out, 6)
}

// Test_MACMapper_RejectsWrongLength confirms an EUI-64 (8-byte) address is
// rejected rather than silently truncated.
func Test_MACMapper_RejectsWrongLength(t *testing.T) {
	is := assert.New(t)

	mac, err := net.ParseMAC("02:00:5e:10:00:00:00:01")
	is.NoError(err)

	m := newMACMapperForTest(t, "eui64-key")
	_, err = m.Map(mac)
	is.ErrorIs(err, ErrInvalidRange)
}

// Test_MACMapper_MapLex_PreservesOrder confirms lex mode orders MACs by
// their 48-bit numeric value.
func Test_MACMapper_MapLex_PreservesOrder(t *testing.T) {
	is := assert.New(t)

	m := newMACMapperForTest(t, "mac-lex-key")
	macs := []net.HardwareAddr{
		mustParseMAC(t, "00:00:00:00:00:01"),
		mustParseMAC(t, "00:00:00:00:00:02"),
		mustParseMAC(t, "00:00:00:00:00:03"),
	}
	for _, mac := range macs {
		is.NoError(m.SetUsed(mac))
	}

	outs := make([]net.HardwareAddr, len(macs))
	for i, mac := range macs {
		out, err := m.MapLex(mac)
		is.NoError(err)
		outs[i] = out
	}

	vals := make([]uint64, len(outs))
	for i, out := range outs {
		v, err := macToUint64(out)
		is.NoError(err)
		vals[i] = v
	}
	for i := 1; i < len(vals); i++ {
		is.Less(vals[i-1], vals[i])
	}
}

func mustParseMAC(t *testing.T, s string) net.HardwareAddr {
	t.Helper()
	mac, err := net.ParseMAC(s)
	if err != nil {
		t.Fatalf("ParseMAC(%q): %v", s, err)
	}
	return mac
}
