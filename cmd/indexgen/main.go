// Command indexgen generates indexer type code from contract ABIs.
package main

import (
	"os"

	"github.com/roach88/indexgen/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
