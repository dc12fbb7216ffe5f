// Package main is the entry point for the plainspec CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/denizgursoy/plainspec/internal/cli"
)

var Version = "dev"

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.Version = Version
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
