package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ownerlint/ownerlint/pkg/generate"
)

var (
	generateRules       int
	generateComments    int
	generateMaxOwners   int
	generateSeed        uint64
	generateSize        string
	generateTargetBytes int
	generateOutput      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic CODEOWNERS file",
	Long: `Generate a deterministic pseudo-random CODEOWNERS file for benchmarks and
corpus tests. The same seed always produces the same file, and the output
parses cleanly.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateRules, "rules", 100, "Number of rule lines")
	generateCmd.Flags().IntVar(&generateComments, "comments", 20, "Number of comment lines")
	generateCmd.Flags().IntVar(&generateMaxOwners, "max-owners", 4, "Maximum owners per rule")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 42, "Random seed")
	generateCmd.Flags().StringVar(&generateSize, "size", "", "Size preset: small, medium, large, xlarge")
	generateCmd.Flags().IntVar(&generateTargetBytes, "target-bytes", 0, "Approximate output size in bytes (overrides --size)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "Output file path (default: stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generate.DefaultConfig()
	switch generateSize {
	case "":
	case "small":
		cfg = generate.Small()
	case "medium":
		cfg = generate.Medium()
	case "large":
		cfg = generate.Large()
	case "xlarge":
		cfg = generate.XLarge()
	default:
		return fmt.Errorf("unknown size %q (expected small, medium, large, or xlarge)", generateSize)
	}
	if generateTargetBytes > 0 {
		cfg = generate.TargetBytes(generateTargetBytes)
	}
	if cmd.Flags().Changed("rules") {
		cfg = generate.NewConfig(generateRules)
	}
	if cmd.Flags().Changed("comments") {
		cfg.NumComments = generateComments
	}
	if cmd.Flags().Changed("max-owners") {
		cfg.MaxOwnersPerRule = generateMaxOwners
	}
	cfg = cfg.WithSeed(generateSeed)

	content := generate.Generate(cfg)

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", generateOutput, err)
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rules (%d bytes) to %s\n", cfg.NumRules, len(content), generateOutput)
		}
		return nil
	}

	_, err := io.WriteString(cmd.OutOrStdout(), content)
	return err
}
