package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "ownerlint v%s\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", commit)
	fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
	fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}
