// The main package for the stockwatch executable.
package main

import (
	"os"

	"github.com/unifiwatch/stockwatch/cmd"
)

// main is the entry point of the application. It defers execution to
// the Cobra CLI and exits with the run's documented status code.
func main() {
	os.Exit(cmd.Execute())
}
