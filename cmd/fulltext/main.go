// Package main provides the entry point for the fulltext CLI.
package main

import (
	"os"

	"github.com/wizenheimer/fulltext/cmd/fulltext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
