// Package main is the entry point for the phonix CLI.
package main

import (
	"os"

	"github.com/f3rmion/phonix/cmd/phonix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
