package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codecheckers/regclerk/config"
	"github.com/codecheckers/regclerk/internal/log"
	"github.com/codecheckers/regclerk/internal/output"
	"github.com/codecheckers/regclerk/internal/roster"
	"github.com/codecheckers/regclerk/internal/tui"
)

// NewCmdCheckers creates the checkers command.
func NewCmdCheckers(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkers [query]",
		Short: "Search the codechecker roster",
		Long: `Searches the codechecker roster by name, GitHub handle or skill.
With a query argument the matches are printed; without one an interactive
search opens (when the terminal allows it).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckers(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().StringVar(&opts.RosterURL, "roster-url", "", "Roster CSV URL (overrides config)")
	cmd.Flags().StringVar(&opts.RosterFile, "roster-file", "", "Local roster CSV path (overrides URL)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	return cmd
}

func runCheckers(cmd *cobra.Command, opts *Options, args []string) error {
	initLogging(opts, false)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	checkers, err := loadRoster(cmd, opts, cfg)
	if err != nil {
		return err
	}
	log.Debug("roster loaded", "checkers", len(checkers))

	if len(args) == 0 && tui.ShouldUseTUI() {
		picked, err := tui.RunSearchUI(checkers)
		if err != nil {
			return err
		}
		if picked != nil {
			fmt.Printf("@%s  %s  %s\n", picked.Handle, picked.Name, strings.Join(picked.Skills, ", "))
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a search query is required outside interactive mode")
	}

	formatter, err := output.NewFormatter(resolveFormat(opts, cfg))
	if err != nil {
		return err
	}
	return formatter.FormatCheckers(roster.Search(checkers, args[0]), os.Stdout)
}

// loadRoster reads the roster from the configured source: local file first,
// then URL.
func loadRoster(cmd *cobra.Command, opts *Options, cfg *config.Config) ([]roster.Checker, error) {
	if opts.RosterFile != "" {
		return roster.LoadFile(opts.RosterFile)
	}
	url := opts.RosterURL
	if url == "" {
		url = cfg.RosterURL
	}
	return roster.Fetch(cmd.Context(), url)
}
