package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "regclerk",
		Short: "CODECHECK register assistant",
		Long: `A CLI assistant for CODECHECK register maintainers. It computes the
next unused certificate identifier from the register's issue titles, shows
register statistics, and helps open correctly-numbered certificate issues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add next flags to the root so `regclerk` and `regclerk next` work
	// identically.
	addNextFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdNext(opts))
	rootCmd.AddCommand(NewCmdStats(opts))
	rootCmd.AddCommand(NewCmdIssue(opts))
	rootCmd.AddCommand(NewCmdCheckers(opts))
	rootCmd.AddCommand(NewCmdLabels(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdCache(opts))
	rootCmd.AddCommand(NewCmdRateLimit(opts))
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
