// Command square checks a goblin build against a reference image tool.
//
// Usage:
//
//	square <binary> <size>
//	square suite [binary] <suite.yaml>
package main

import (
	"fmt"
	"os"

	"github.com/roach88/goblin/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
