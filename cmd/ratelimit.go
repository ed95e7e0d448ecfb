package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecheckers/regclerk/config"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long:  `Display the current GitHub API rate limit: remaining quota and reset time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRateLimit(cmd, opts)
		},
	}
	return cmd
}

func runRateLimit(cmd *cobra.Command, opts *Options) error {
	initLogging(opts, false)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newGitHubClient(cfg)
	if err != nil {
		return err
	}

	limits, _, err := client.RawClient().RateLimit.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get rate limits: %w", err)
	}

	if cfg.GetGitHubToken() == "" {
		fmt.Println("Unauthenticated (set GITHUB_TOKEN to raise the quota).")
		fmt.Println()
	}

	if limits.Core != nil {
		resetIn := time.Until(limits.Core.Reset.Time).Round(time.Second)
		if resetIn < 0 {
			resetIn = 0
		}
		fmt.Printf("Core API:   %d/%d remaining (resets in %s)\n",
			limits.Core.Remaining, limits.Core.Limit, resetIn)
	}

	if limits.Search != nil {
		resetIn := time.Until(limits.Search.Reset.Time).Round(time.Second)
		if resetIn < 0 {
			resetIn = 0
		}
		fmt.Printf("Search API: %d/%d remaining (resets in %s)\n",
			limits.Search.Remaining, limits.Search.Limit, resetIn)
	}

	return nil
}
