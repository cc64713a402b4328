package main

import (
	"fmt"

	"github.com/anonkit/netanon"
	"github.com/anonkit/netanon/internal/lineio"
	"github.com/spf13/cobra"
)

func newInt64Cmd() *cobra.Command {
	var lex bool
	var passphrase string

	cmd := &cobra.Command{
		Use:   "int64 [flags] lower upper file",
		Short: "Order-preserving anonymization of signed 64-bit integers",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lower, err := lineio.ParseInt64(args[0])
			if err != nil {
				return usageErr(fmt.Errorf("lower bound must be a number: %w", err))
			}
			upper, err := lineio.ParseInt64(args[1])
			if err != nil {
				return usageErr(fmt.Errorf("upper bound must be a number: %w", err))
			}

			key, err := resolveKey(passphrase)
			if err != nil {
				return mapperErr(err)
			}
			m, err := anon.NewInt64Mapper(lower, upper)
			if err != nil {
				return usageErr(err)
			}
			if err := m.SetKey(key); err != nil {
				return mapperErr(err)
			}

			in, closeFn, err := openInput(args[2])
			if err != nil {
				return fileErr(err)
			}
			defer closeFn()

			lines, err := readAllLines(in)
			if err != nil {
				return fileErr(err)
			}
			nums := make([]int64, 0, len(lines))
			for _, line := range lines {
				v, err := lineio.ParseInt64(line)
				if err != nil {
					return fileErr(err)
				}
				nums = append(nums, v)
			}

			if lex {
				for _, v := range nums {
					if err := m.SetUsed(v); err != nil {
						return mapperErr(err)
					}
				}
			}

			out := cmd.OutOrStdout()
			for _, v := range nums {
				var anonV int64
				if lex {
					anonV, err = m.MapLex(v)
				} else {
					anonV, err = m.Map(v)
				}
				if err != nil {
					return mapperErr(err)
				}
				fmt.Fprintln(out, anonV)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lex, "lex", "l", false, "preserve numeric order among used values (two-pass)")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "derive the key from this passphrase instead of system randomness")
	return cmd
}
