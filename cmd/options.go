package cmd

// Options holds the shared command-line options for the regclerk CLI.
type Options struct {
	Register     string // register key: production or testing
	Format       string // output format: table or json
	Year         int    // certificate year, 0 = current year
	Padding      int    // minimum digit width of the certificate number
	RequireLabel string // marker label gating identifier extraction
	Verbosity    int
	TUI          *bool // nil = auto-detect, true = force TUI, false = disable TUI

	// Roster options
	RosterURL  string // roster CSV URL (overrides config)
	RosterFile string // local roster CSV path (overrides URL)

	// Profiling options
	CPUProfile string // write CPU profile to file
	MemProfile string // write memory profile to file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRegister selects the register ("production" or "testing").
func WithRegister(register string) Option {
	return func(o *Options) {
		o.Register = register
	}
}

// WithFormat sets the output format (table, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithYear sets the certificate year.
func WithYear(year int) Option {
	return func(o *Options) {
		o.Year = year
	}
}

// WithPadding sets the minimum digit width of the certificate number.
func WithPadding(padding int) Option {
	return func(o *Options) {
		o.Padding = padding
	}
}

// WithRequireLabel gates extraction to issues carrying the marker label.
func WithRequireLabel(label string) Option {
	return func(o *Options) {
		o.RequireLabel = label
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}
