package cmd

import (
	"fmt"
	"strconv"

	"github.com/codecheckers/regclerk/internal/tui"
)

// tuiFlag is the tri-state --tui value. "auto" (the zero state) leaves the
// decision to terminal detection; any boolean spelling strconv recognizes
// forces the progress display on or off.
type tuiFlag struct {
	opts *Options
}

func newTUIFlag(opts *Options) *tuiFlag {
	return &tuiFlag{opts: opts}
}

func (f *tuiFlag) String() string {
	if f.opts.TUI == nil {
		return "auto"
	}
	return strconv.FormatBool(*f.opts.TUI)
}

func (f *tuiFlag) Set(s string) error {
	if s == "auto" {
		f.opts.TUI = nil
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q for --tui: use true, false, or auto", s)
	}
	f.opts.TUI = &v
	return nil
}

// Type reports "bool" so cobra renders --tui as a boolean flag.
func (f *tuiFlag) Type() string {
	return "bool"
}

// IsBoolFlag marks the flag boolean for stdlib flag compatibility; with
// pflag the bare --tui form comes from its NoOptDefVal instead.
func (f *tuiFlag) IsBoolFlag() bool {
	return true
}

// shouldUseTUI decides whether the progress display owns the terminal for a
// next-identifier run. Verbose logging always wins: -v output and the TUI
// would otherwise fight over the same lines.
func shouldUseTUI(opts *Options) bool {
	if opts.Verbosity > 0 {
		return false
	}
	if opts.TUI != nil {
		return *opts.TUI
	}
	return tui.ShouldUseTUI()
}
