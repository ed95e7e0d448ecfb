package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codecheckers/regclerk/config"
	"github.com/codecheckers/regclerk/internal/github"
	"github.com/codecheckers/regclerk/internal/httpcache"
	"github.com/codecheckers/regclerk/internal/log"
	"github.com/codecheckers/regclerk/internal/output"
	"github.com/codecheckers/regclerk/internal/registry"
	"github.com/codecheckers/regclerk/internal/service"
	"github.com/codecheckers/regclerk/internal/tui"
)

// nextRuntime bundles the TUI state threaded through the next command.
type nextRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

// startTUI launches the progress TUI goroutine if TUI mode is enabled.
func (rt *nextRuntime) startTUI(registerName string) {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events, tui.WithRegister(registerName))
	}()
}

// close closes the event channel and waits for the TUI to exit.
func (rt *nextRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	rt.events = nil
	if err := <-rt.tuiDone; err != nil {
		log.Warn("progress display exited with error", "error", err)
	}
}

func (rt *nextRuntime) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

// progressFunc maps service stage transitions onto TUI task events.
func (rt *nextRuntime) progressFunc() service.ProgressFunc {
	stageTask := map[string]tui.TaskID{
		service.StageFetch:   tui.TaskFetch,
		service.StageExtract: tui.TaskExtract,
		service.StageCompute: tui.TaskCompute,
	}
	return func(stage string, done bool, count int) {
		task, ok := stageTask[stage]
		if !ok {
			return
		}
		if done {
			rt.sendEvent(task, tui.StatusComplete, tui.WithCount(count))
		} else {
			rt.sendEvent(task, tui.StatusRunning)
		}
	}
}

// NewCmdNext creates the next command.
func NewCmdNext(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Compute the next free certificate identifier (same as root regclerk)",
		Long: `Reads every issue title in the register repository, extracts the
certificate identifiers already in use, and prints the next free one.
Numbers are append-only: gaps in the sequence are never reused.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNext(cmd, opts)
		},
	}

	addNextFlags(cmd, opts)
	return cmd
}

// addNextFlags adds the next-specific flags to a command.
func addNextFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Register, "register", "r", "", "Register to read (production, testing)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "Certificate year (default: current year)")
	cmd.Flags().IntVar(&opts.Padding, "padding", 0, "Minimum digit width of the certificate number")
	cmd.Flags().StringVar(&opts.RequireLabel, "require-label", "", "Only count issues carrying this label")
	cmd.Flags().Lookup("require-label").NoOptDefVal = "id assigned"
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable progress display (default: auto-detect)")
	cmd.Flags().Lookup("tui").NoOptDefVal = "true"

	cmd.Flags().StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	cmd.Flags().StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
}

func runNext(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	profiler := NewProfiler(opts.CPUProfile, opts.MemProfile)
	if err := profiler.Start(); err != nil {
		return err
	}
	defer profiler.Stop()

	rt := &nextRuntime{useTUI: shouldUseTUI(opts)}
	initLogging(opts, rt.useTUI)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	key := resolveRegisterKey(opts, cfg)
	reg, err := registry.Lookup(key)
	if err != nil {
		return err
	}

	client, err := newGitHubClient(cfg)
	if err != nil {
		return err
	}

	rt.startTUI(reg.FullName())

	assistant, err := service.New(client, key, service.Options{
		Year:         opts.Year,
		Padding:      resolvePadding(opts, cfg),
		RequireLabel: resolveRequireLabel(opts, cfg),
		Floors:       cfg.Floors[string(key)],
		Progress:     rt.progressFunc(),
	})
	if err != nil {
		rt.close()
		return err
	}

	result, err := assistant.NextIdentifier(ctx)
	rt.close()
	if err != nil {
		return err
	}

	if log.IsDebug() {
		total, valid, hits, misses := client.Cache().Stats()
		log.Debug("response cache", "entries", total, "valid", valid, "hits", hits, "misses", misses)
	}

	formatter, err := output.NewFormatter(resolveFormat(opts, cfg))
	if err != nil {
		return err
	}
	return formatter.FormatNext(result, os.Stdout)
}

// initLogging configures logging; logs are discarded while the TUI owns the
// terminal.
func initLogging(opts *Options, useTUI bool) {
	if useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}
}

// resolveRegisterKey picks the register from the flag, then config, then the
// production default.
func resolveRegisterKey(opts *Options, cfg *config.Config) registry.Key {
	if opts.Register != "" {
		return registry.Key(opts.Register)
	}
	if cfg.DefaultRegister != "" {
		return registry.Key(cfg.DefaultRegister)
	}
	return registry.KeyProduction
}

func resolveFormat(opts *Options, cfg *config.Config) output.Format {
	if opts.Format != "" {
		return output.Format(opts.Format)
	}
	return output.Format(cfg.DefaultFormat)
}

func resolvePadding(opts *Options, cfg *config.Config) int {
	if opts.Padding > 0 {
		return opts.Padding
	}
	return cfg.Padding
}

// resolveRequireLabel returns the marker label gate: the flag wins, then the
// config. Empty means no gating.
func resolveRequireLabel(opts *Options, cfg *config.Config) string {
	if opts.RequireLabel != "" {
		return opts.RequireLabel
	}
	return cfg.MarkerLabel
}

// newGitHubClient builds the cached GitHub client from config.
func newGitHubClient(cfg *config.Config) (*github.Client, error) {
	cache := httpcache.New(cfg.GetCacheTTL())
	return github.NewClient(cfg.GetGitHubToken(), cache)
}
