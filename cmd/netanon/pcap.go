package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// pcapMagicLE and pcapMagicBE are the two byte orders of the classic libpcap
// global header magic number (24-byte header, no nanosecond variant).
const (
	pcapMagicLE = 0xa1b2c3d4
	pcapMagicBE = 0xd4c3b2a1
)

// newPcapCmd implements the pcap subcommand named in SPEC_FULL.md §6.2. The
// original_source tooling this is supplemented from rewrites addresses
// in-place inside a packet; this port stops short of that: it parses enough
// of the global header to confirm the file is a classic pcap capture and
// echoes every record unmodified, making the limitation explicit instead of
// silently passing unanonymized captures through as if they were scrubbed.
func newPcapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pcap [flags] file",
		Short: "Echo a pcap capture unmodified (payload rewriting not implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeFn, err := openInput(args[0])
			if err != nil {
				return fileErr(err)
			}
			defer closeFn()

			r := bufio.NewReader(in)
			header := make([]byte, 24)
			if _, err := io.ReadFull(r, header); err != nil {
				return fileErr(fmt.Errorf("reading pcap global header: %w", err))
			}

			var order binary.ByteOrder
			switch magic := binary.LittleEndian.Uint32(header[:4]); magic {
			case pcapMagicLE:
				order = binary.LittleEndian
			case pcapMagicBE:
				order = binary.BigEndian
			default:
				return usageErr(fmt.Errorf("not a classic pcap capture (magic %#x)", magic))
			}

			fmt.Fprintf(cmd.ErrOrStderr(),
				"netanon: pcap payload rewriting is not implemented; echoing %s capture unmodified\n",
				byteOrderName(order))

			out := cmd.OutOrStdout()
			if _, err := out.Write(header); err != nil {
				return fileErr(err)
			}

			recHeader := make([]byte, 16)
			for {
				if _, err := io.ReadFull(r, recHeader); err != nil {
					if err == io.EOF {
						break
					}
					return fileErr(fmt.Errorf("reading packet record header: %w", err))
				}
				capLen := order.Uint32(recHeader[8:12])
				if _, err := out.Write(recHeader); err != nil {
					return fileErr(err)
				}
				if _, err := io.CopyN(out, r, int64(capLen)); err != nil {
					return fileErr(fmt.Errorf("reading packet payload: %w", err))
				}
			}
			return nil
		},
	}
	return cmd
}

func byteOrderName(order binary.ByteOrder) string {
	if order == binary.BigEndian {
		return "big-endian"
	}
	return "little-endian"
}
