// Command stmtir builds, compiles and runs SQL statement scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/stmtir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
