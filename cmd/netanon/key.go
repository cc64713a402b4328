package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/anonkit/netanon"
	"github.com/spf13/cobra"
)

// resolveKey returns a fresh Key seeded from passphrase if non-empty, or
// from system randomness otherwise, matching every C subcommand's
// "key = anon_key_new(); anon_key_set_random(key);" default with an
// optional -p override.
func resolveKey(passphrase string) (*anon.Key, error) {
	key := anon.NewKey()
	if passphrase != "" {
		key.SetPassphrase(passphrase)
		return key, nil
	}
	if err := key.SetRandom(); err != nil {
		return nil, err
	}
	return key, nil
}

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key file",
		Short: "Derive and print a hex-encoded key for each passphrase in file",
		Long: "Reads one passphrase per line from file (a single dash reads stdin)\n" +
			"and prints the hex-encoded key that passphrase derives to.\n" +
			"Supplementing original_source's 'anon key' subcommand, this is a\n" +
			"standalone way to inspect what a passphrase derives to.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeFn, err := openInput(args[0])
			if err != nil {
				return fileErr(err)
			}
			defer closeFn()

			key := anon.NewKey()
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				key.SetPassphrase(line)
				fmt.Fprintf(cmd.OutOrStdout(), "%x\n", key.Bytes())
			}
			if err := scanner.Err(); err != nil {
				return fileErr(err)
			}
			return nil
		},
	}
	return cmd
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
