// Command organctl inspects and maintains organcare state from the shell. It
// opens the configured storage directly, so run it against the same
// environment as the api process.
package main

import (
	"os"

	"github.com/ghuser/organcare/pkg/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
