// Command loxscript scans, parses, and evaluates the language described
// in this repository's design documents: "loxscript run" with no
// arguments starts an interactive prompt, and "loxscript run <file>"
// executes a script.
package main

import (
	"fmt"
	"os"

	"github.com/loxscript/loxscript/cmd/loxscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
