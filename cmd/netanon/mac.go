package main

import (
	"fmt"
	"net"

	"github.com/anonkit/netanon"
	"github.com/anonkit/netanon/internal/lineio"
	"github.com/spf13/cobra"
)

func newMACCmd() *cobra.Command {
	var lex bool
	var passphrase string

	cmd := &cobra.Command{
		Use:   "mac [flags] file",
		Short: "Anonymization of IEEE 802 MAC addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveKey(passphrase)
			if err != nil {
				return mapperErr(err)
			}
			m := anon.NewMACMapper()
			if err := m.SetKey(key); err != nil {
				return mapperErr(err)
			}

			in, closeFn, err := openInput(args[0])
			if err != nil {
				return fileErr(err)
			}
			defer closeFn()

			lines, err := readAllLines(in)
			if err != nil {
				return fileErr(err)
			}
			macs := make([]net.HardwareAddr, 0, len(lines))
			for _, line := range lines {
				mac, err := lineio.ParseMAC(line)
				if err != nil {
					return fileErr(err)
				}
				macs = append(macs, mac)
			}

			if lex {
				for _, mac := range macs {
					if err := m.SetUsed(mac); err != nil {
						return mapperErr(err)
					}
				}
			}

			out := cmd.OutOrStdout()
			for _, mac := range macs {
				var anonMAC net.HardwareAddr
				if lex {
					anonMAC, err = m.MapLex(mac)
				} else {
					anonMAC, err = m.Map(mac)
				}
				if err != nil {
					return mapperErr(err)
				}
				fmt.Fprintln(out, anonMAC)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lex, "lex", "l", false, "preserve numeric order among used addresses (two-pass)")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "derive the key from this passphrase instead of system randomness")
	return cmd
}
