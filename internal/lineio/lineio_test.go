// Copyright (c) 2025 The netanon Authors
// SPDX-License-Identifier: MIT

package lineio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_ScanLines_TrimsAndSkipsBlank confirms blank and whitespace-only
// lines are skipped and surrounding whitespace is trimmed before fn sees
// the line.
func Test_ScanLines_TrimsAndSkipsBlank(t *testing.T) {
	is := assert.New(t)

	input := "  first  \n\n   \nsecond\n"
	var got []string
	err := ScanLines(strings.NewReader(input), func(line string) error {
		got = append(got, line)
		return nil
	})
	is.NoError(err)
	is.Equal([]string{"first", "second"}, got)
}

// Test_ParseIPv4_RejectsIPv6 confirms ParseIPv4 refuses an IPv6 literal.
func Test_ParseIPv4_RejectsIPv6(t *testing.T) {
	is := assert.New(t)

	_, err := ParseIPv4("::1")
	is.Error(err)
}

// Test_ParseIPv6_RejectsIPv4 confirms ParseIPv6 refuses a dotted-quad
// literal.
func Test_ParseIPv6_RejectsIPv4(t *testing.T) {
	is := assert.New(t)

	_, err := ParseIPv6("192.0.2.1")
	is.Error(err)
}

// Test_ParseMAC_Valid confirms a well-formed MAC address round-trips.
func Test_ParseMAC_Valid(t *testing.T) {
	is := assert.New(t)

	mac, err := ParseMAC("01:02:03:04:05:06")
	is.NoError(err)
	is.Equal("01:02:03:04:05:06", mac.String())
}

// Test_ParseInt64_RejectsNonNumeric confirms a malformed line is reported
// as an error rather than silently parsed as zero.
func Test_ParseInt64_RejectsNonNumeric(t *testing.T) {
	is := assert.New(t)

	_, err := ParseInt64("not-a-number")
	is.Error(err)
}

// Test_ParseUint64_RejectsNegative confirms a negative literal is rejected
// by the unsigned parser.
func Test_ParseUint64_RejectsNegative(t *testing.T) {
	is := assert.New(t)

	_, err := ParseUint64("-1")
	is.Error(err)
}
