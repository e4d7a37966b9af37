// Package main is the entry point for the itemhub CLI.
package main

import (
	"os"

	"github.com/Amreshcodee/itemhub/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
