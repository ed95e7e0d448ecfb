package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codecheckers/regclerk/config"
	"github.com/codecheckers/regclerk/internal/registry"
	"github.com/codecheckers/regclerk/internal/service"
)

// issueOptions holds the flags specific to the issue command.
type issueOptions struct {
	kind     string
	id       string
	paper    string
	venue    string
	checker  string
	assignee []string
}

// NewCmdIssue creates the issue command.
func NewCmdIssue(opts *Options) *cobra.Command {
	iopts := &issueOptions{}

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a prefilled new-issue URL for the next certificate",
		Long: `Builds a GitHub "new issue" URL for the register, prefilled with the
certificate issue template for the given kind. Without --id the next free
identifier is computed first. The URL is printed, never requested: the issue
is only created when you open it in a browser.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIssue(cmd, opts, iopts)
		},
	}

	cmd.Flags().StringVarP(&opts.Register, "register", "r", "", "Register to open the issue in (production, testing)")
	cmd.Flags().StringVarP(&iopts.kind, "kind", "k", string(registry.KindJournal),
		"Certificate kind (journal, conference, community)")
	cmd.Flags().StringVar(&iopts.id, "id", "", "Certificate identifier (default: computed next)")
	cmd.Flags().StringVar(&iopts.paper, "paper", "", "Paper or work title")
	cmd.Flags().StringVar(&iopts.venue, "venue", "", "Conference or workshop name")
	cmd.Flags().StringVar(&iopts.checker, "checker", "", "Codechecker GitHub handle")
	cmd.Flags().StringSliceVar(&iopts.assignee, "assignee", nil, "Issue assignees")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	return cmd
}

func runIssue(cmd *cobra.Command, opts *Options, iopts *issueOptions) error {
	initLogging(opts, false)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	key := resolveRegisterKey(opts, cfg)
	reg, err := registry.Lookup(key)
	if err != nil {
		return err
	}

	tpl, err := registry.TemplateFor(registry.CertificateKind(iopts.kind))
	if err != nil {
		return err
	}

	id := iopts.id
	if id == "" {
		client, err := newGitHubClient(cfg)
		if err != nil {
			return err
		}
		assistant, err := service.New(client, key, service.Options{
			Padding:      resolvePadding(opts, cfg),
			RequireLabel: resolveRequireLabel(opts, cfg),
			Floors:       cfg.Floors[string(key)],
		})
		if err != nil {
			return err
		}
		result, err := assistant.NextIdentifier(cmd.Context())
		if err != nil {
			return err
		}
		id = result.Next.Identifier
	}

	filled := tpl.Fill(map[string]string{
		"id":      id,
		"paper":   iopts.paper,
		"venue":   iopts.venue,
		"checker": iopts.checker,
	})
	if len(iopts.assignee) > 0 {
		filled.Assignees = iopts.assignee
	}

	fmt.Fprintln(cmd.OutOrStdout(), registry.NewIssueURL(reg, filled))
	return nil
}
