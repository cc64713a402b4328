package main

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/anonkit/netanon"
	"github.com/anonkit/netanon/internal/lineio"
	"github.com/spf13/cobra"
)

// readAllLines buffers every non-empty trimmed line of r, so that lex mode
// can run its mark pass and its map pass over the same input even when r
// is a non-seekable stream (e.g. stdin), mirroring original_source's
// fseek-based rewind without requiring a seekable file.
func readAllLines(r io.Reader) ([]string, error) {
	var lines []string
	err := lineio.ScanLines(r, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

func runIPv4(cmd *cobra.Command, in io.Reader, m *anon.IPv4Mapper, lex bool) (int, error) {
	lines, err := readAllLines(in)
	if err != nil {
		return 0, fileErr(err)
	}

	addrs := make([]netip.Addr, 0, len(lines))
	for _, line := range lines {
		addr, err := lineio.ParseIPv4(line)
		if err != nil {
			return 0, fileErr(err)
		}
		addrs = append(addrs, addr)
	}

	if lex {
		for _, a := range addrs {
			if err := m.SetUsed(a, 32); err != nil {
				return 0, mapperErr(err)
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, a := range addrs {
		var (
			anonAddr netip.Addr
			err      error
		)
		if lex {
			anonAddr, err = m.MapPrefixLex(a)
		} else {
			anonAddr, err = m.MapPrefix(a)
		}
		if err != nil {
			return 0, mapperErr(err)
		}
		fmt.Fprintln(out, anonAddr)
	}
	return len(addrs), nil
}

func runIPv6(cmd *cobra.Command, in io.Reader, m *anon.IPv6Mapper, lex bool) (int, error) {
	lines, err := readAllLines(in)
	if err != nil {
		return 0, fileErr(err)
	}

	addrs := make([]netip.Addr, 0, len(lines))
	for _, line := range lines {
		addr, err := lineio.ParseIPv6(line)
		if err != nil {
			return 0, fileErr(err)
		}
		addrs = append(addrs, addr)
	}

	if lex {
		for _, a := range addrs {
			if err := m.SetUsed(a, 128); err != nil {
				return 0, mapperErr(err)
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, a := range addrs {
		var (
			anonAddr netip.Addr
			err      error
		)
		if lex {
			anonAddr, err = m.MapPrefixLex(a)
		} else {
			anonAddr, err = m.MapPrefix(a)
		}
		if err != nil {
			return 0, mapperErr(err)
		}
		fmt.Fprintln(out, anonAddr)
	}
	return len(addrs), nil
}
