package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ownerlint/ownerlint"
	"github.com/ownerlint/ownerlint/pkg/check"
	"github.com/ownerlint/ownerlint/pkg/lookup"
	"github.com/ownerlint/ownerlint/pkg/serve"
	"github.com/ownerlint/ownerlint/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming validation server for editor and CI embedding",
	Long: `Run ownerlint as a long-lived streaming server that accepts validation
requests via stdin and writes results to stdout using NDJSON format.

This mode is designed for embedding into another runtime, an editor
extension or a CI harness for example. The process answers requests until
a shutdown request arrives, stdin closes, or SIGTERM is received.

Provider credentials are taken from the environment (GITHUB_ACCESS_TOKEN or
GITLAB_ACCESS_TOKEN); without them the owners check is unavailable.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveValidate(cmd, nil)
	if err != nil {
		return err
	}

	lk, closeCache, err := buildLookup(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	srv := serve.NewServer(serveValidateFunc(lk), cmd.InOrStdin(), cmd.OutOrStdout())
	if err := srv.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return errInterrupted
		}
		return err
	}
	return nil
}

// serveValidateFunc builds a fresh validator per request, so each request
// carries its own configuration. Requests without a repository root and
// without an explicit check list fall back to the checks that need no file
// tree.
func serveValidateFunc(lk lookup.Lookup) serve.ValidateFunc {
	return func(ctx context.Context, p serve.ValidatePayload) (map[string][]types.Issue, error) {
		opts := []ownerlint.Option{ownerlint.WithConfig(ownerlint.CheckConfig{
			IgnoredOwners:        p.IgnoredOwners,
			OwnersMustBeTeams:    p.OwnersMustBeTeams,
			AllowUnownedPatterns: p.AllowUnownedPatterns,
			SkipPatterns:         p.SkipPatterns,
			Repository:           p.Repository,
		})}

		switch {
		case len(p.Checks) > 0:
			opts = append(opts, ownerlint.WithChecks(p.Checks...))
		case p.RepoRoot == "":
			names := []string{check.NameSyntax, check.NameDupPatterns}
			if lk != nil {
				names = append(names, check.NameOwners)
			}
			opts = append(opts, ownerlint.WithChecks(names...))
		}
		if lk != nil {
			opts = append(opts, ownerlint.WithOwnerLookup(lk))
		}

		v, err := ownerlint.New(opts...)
		if err != nil {
			return nil, err
		}

		result, err := v.ValidateString(ctx, p.Content, p.RepoRoot)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}
