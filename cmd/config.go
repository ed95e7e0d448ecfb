package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codecheckers/regclerk/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.`,
		RunE: runConfigShow,
	}

	cmd.AddCommand(newCmdConfigInit())
	cmd.AddCommand(newCmdConfigPath())

	return cmd
}

// newCmdConfigInit creates the config init subcommand.
func newCmdConfigInit() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a global config file with current defaults",
		RunE:  runConfigInit,
	}
}

// newCmdConfigPath creates the config path subcommand.
func newCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		RunE:  runConfigPath,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(config.ConfigPath()); err == nil {
		return fmt.Errorf("config file already exists at %s", config.ConfigPath())
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", config.ConfigPath())
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	printPath := func(label, path string) {
		status := "missing"
		if _, err := os.Stat(path); err == nil {
			status = "exists"
		}
		fmt.Printf("%s %s (%s)\n", label, path, status)
	}
	printPath("Global:", config.ConfigPath())
	printPath("Local: ", config.LocalConfigPath())
	return nil
}
