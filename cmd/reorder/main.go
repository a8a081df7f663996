// Command reorder runs conformance scenarios against the reorder library.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/reorder/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
