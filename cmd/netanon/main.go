// Command netanon anonymizes IP addresses, MAC addresses, integers and
// octet strings pulled from network traces, preserving prefix or order
// relationships under a caller-supplied or randomly drawn key.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "netanon: %s\n", err)
		os.Exit(exitCodeOf(err))
	}
}
