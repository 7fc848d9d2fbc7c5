// Command sortstep runs, benchmarks, records and animates instrumented
// sorting algorithms.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortstep/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
