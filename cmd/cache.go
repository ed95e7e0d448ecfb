package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codecheckers/regclerk/config"
	"github.com/codecheckers/regclerk/internal/duration"
)

// NewCmdCache creates the cache command with subcommands. The response cache
// is in-memory and scoped to a single invocation, so there is nothing on disk
// to clear; the command manages the memoization window instead.
func NewCmdCache(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage GitHub response memoization",
	}

	cmd.AddCommand(newCmdCacheInfo())
	cmd.AddCommand(newCmdCacheTTL())

	return cmd
}

// newCmdCacheInfo creates the cache info subcommand.
func newCmdCacheInfo() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the response cache configuration",
		RunE:  runCacheInfo,
	}
}

// newCmdCacheTTL creates the cache ttl subcommand.
func newCmdCacheTTL() *cobra.Command {
	return &cobra.Command{
		Use:   "ttl <duration>",
		Short: "Set the response cache TTL (e.g. 5m, 1h)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCacheTTL,
	}
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Response cache:\n")
	fmt.Printf("  Scope: in-memory, per invocation\n")
	fmt.Printf("  TTL:   %s\n", cfg.GetCacheTTL())
	fmt.Printf("\nWithin one run, repeated requests for the same issue page are served\n")
	fmt.Printf("from memory until the TTL elapses; a fresh run always refetches.\n")
	return nil
}

func runCacheTTL(cmd *cobra.Command, args []string) error {
	ttl, err := duration.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid TTL: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.CacheTTL = args[0]
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Response cache TTL set to %s.\n", ttl)
	return nil
}
