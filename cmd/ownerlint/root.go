package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	quiet     bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "ownerlint [path]",
	Short: "Ownerlint - CODEOWNERS file validator",
	Long: `Ownerlint validates CODEOWNERS files: it checks pattern syntax, finds rules
that match no files, duplicated and shadowed patterns, files nobody owns, and
owners that do not exist on GitHub or GitLab.

Run without a subcommand to validate the repository in the current directory
(or the path given as argument).`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runValidate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (issues only)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colorize output: auto, always, never")

	// Add subcommands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
