package main

import (
	"fmt"

	"github.com/anonkit/netanon"
	"github.com/spf13/cobra"
)

func newOctsCmd() *cobra.Command {
	var lex bool
	var passphrase string

	cmd := &cobra.Command{
		Use:   "octs [flags] file",
		Short: "Order-preserving anonymization of octet strings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveKey(passphrase)
			if err != nil {
				return mapperErr(err)
			}
			m := anon.NewOctetStringMapper()
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

			if lex {
				for _, line := range lines {
					if err := m.SetUsed([]byte(line)); err != nil {
						return mapperErr(err)
					}
				}
			}

			out := cmd.OutOrStdout()
			for _, line := range lines {
				var anonLine []byte
				if lex {
					anonLine, err = m.MapLex([]byte(line))
				} else {
					anonLine, err = m.Map([]byte(line))
				}
				if err != nil {
					return mapperErr(err)
				}
				fmt.Fprintf(out, "%x\n", anonLine)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lex, "lex", "l", false, "preserve lexicographic order among used strings (two-pass)")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "derive the key from this passphrase instead of system randomness")
	return cmd
}
