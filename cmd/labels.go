package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codecheckers/regclerk/config"
	"github.com/codecheckers/regclerk/internal/output"
	"github.com/codecheckers/regclerk/internal/registry"
)

// NewCmdLabels creates the labels command.
func NewCmdLabels(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List the register's labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLabels(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Register, "register", "r", "", "Register to read (production, testing)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	return cmd
}

func runLabels(cmd *cobra.Command, opts *Options) error {
	initLogging(opts, false)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg, err := registry.Lookup(resolveRegisterKey(opts, cfg))
	if err != nil {
		return err
	}

	client, err := newGitHubClient(cfg)
	if err != nil {
		return err
	}

	labels, err := client.ListLabels(cmd.Context(), reg.Owner, reg.Repo)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(resolveFormat(opts, cfg))
	if err != nil {
		return err
	}
	return formatter.FormatLabels(labels, os.Stdout)
}
