// SPDX-License-Identifier: MIT

// Command nataf is the command-line front end of the Nataf engine.
package main

import (
	"os"

	"github.com/katalvlaran/nataf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
