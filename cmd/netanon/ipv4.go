package main

import (
	"fmt"
	"time"

	"github.com/anonkit/netanon"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newIPv4Cmd() *cobra.Command {
	var lex, stats bool
	var passphrase string

	cmd := &cobra.Command{
		Use:   "ipv4 [flags] file",
		Short: "Prefix-preserving anonymization of IPv4 addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveKey(passphrase)
			if err != nil {
				return mapperErr(err)
			}
			m := anon.NewIPv4Mapper()
			if err := m.SetKey(key); err != nil {
				return mapperErr(err)
			}

			in, closeFn, err := openInput(args[0])
			if err != nil {
				return fileErr(err)
			}
			defer closeFn()

			start := time.Now()
			cnt, err := runIPv4(cmd, in, m, lex)
			if err != nil {
				return err
			}
			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "netanon: elapsed: %s\n", time.Since(start))
				fmt.Fprintf(cmd.ErrOrStderr(), "netanon: addresses: %s\n", humanize.Comma(int64(cnt)))
				fmt.Fprintf(cmd.ErrOrStderr(), "netanon: trie nodes: %s\n", humanize.Comma(int64(m.NodesCount())))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lex, "lex", "l", false, "preserve lexicographic order (two-pass)")
	cmd.Flags().BoolVarP(&stats, "stats", "c", false, "print elapsed time and node counts to stderr")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "derive the key from this passphrase instead of system randomness")
	return cmd
}
