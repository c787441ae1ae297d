// ABOUTME: Entry point for the habits CLI.
// ABOUTME: Builds the root command and maps errors to exit status 1.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	// PostRun is skipped when a command fails.
	_ = a.close()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
