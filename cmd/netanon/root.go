package main

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "netanon",
		Short:         "Prefix- and order-preserving anonymization of network trace identifiers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newIPv4Cmd(),
		newIPv6Cmd(),
		newMACCmd(),
		newInt64Cmd(),
		newUint64Cmd(),
		newOctsCmd(),
		newKeyCmd(),
		newPcapCmd(),
	)
	return cmd
}
