// Package main is the entry point for the sonido-frames CLI.
//
// Usage:
//
//	sonido-frames [flags] <command> [args]
//
// Commands:
//
//	extract  - Turn an audio file into normalized spectral frames
//	round    - Re-round an existing frame file in place
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/RyanBlaney/sonido-frames/cmd/sonido-frames/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
