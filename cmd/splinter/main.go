// Package main is the entry point for the Splinter CLI.
package main

import (
	"os"

	"github.com/splinterlabs/splinter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
