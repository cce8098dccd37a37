// Command mantra compiles cyclic session descriptions into timelines.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/mantra/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
