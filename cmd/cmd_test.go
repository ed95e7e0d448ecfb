package cmd

import (
	"strings"
	"testing"

	"github.com/codecheckers/regclerk/config"
	"github.com/codecheckers/regclerk/internal/registry"
)

func TestNew(t *testing.T) {
	cmd := New()
	if cmd == nil {
		t.Fatal("New() returned nil")
	}
	if cmd.Use != "regclerk" {
		t.Errorf("expected Use to be 'regclerk', got %q", cmd.Use)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	root := New()
	want := []string{"next", "stats", "issue", "checkers", "labels", "config", "cache", "ratelimit", "version"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.0.0", "abc123", "2024-01-01")
	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("version info not applied: %s %s %s", version, commit, date)
	}
}

func TestVersionCommandShort(t *testing.T) {
	SetVersionInfo("1.2.3", "def456", "2025-06-01")

	var buf strings.Builder
	cmd := NewCmdVersion()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "1.2.3" {
		t.Errorf("expected bare version, got %q", got)
	}
}

func TestNewOptions(t *testing.T) {
	opts := NewOptions(
		WithRegister("testing"),
		WithFormat("json"),
		WithYear(2026),
		WithPadding(4),
		WithRequireLabel("id assigned"),
		WithVerbosity(2),
	)
	if opts.Register != "testing" || opts.Format != "json" || opts.Year != 2026 {
		t.Errorf("options not applied: %+v", opts)
	}
	if opts.Padding != 4 || opts.RequireLabel != "id assigned" || opts.Verbosity != 2 {
		t.Errorf("options not applied: %+v", opts)
	}
}

func TestTUIFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"true", "true", false},
		{"1", "true", false},
		{"false", "false", false},
		{"0", "false", false},
		{"auto", "auto", false},
		{"maybe", "", true},
		{"yes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			opts := &Options{}
			f := newTUIFlag(opts)
			err := f.Set(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q) returned error: %v", tt.input, err)
			}
			if f.String() != tt.want {
				t.Errorf("String() = %q, want %q", f.String(), tt.want)
			}
		})
	}
}

func TestShouldUseTUIVerbosityWins(t *testing.T) {
	force := true
	opts := &Options{Verbosity: 1, TUI: &force}
	if shouldUseTUI(opts) {
		t.Error("verbose output must disable the TUI even when forced on")
	}
}

func TestResolveRegisterKey(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		cfgValue string
		want     registry.Key
	}{
		{"flag wins", "testing", "production", registry.KeyTesting},
		{"config fallback", "", "testing", registry.KeyTesting},
		{"default", "", "", registry.KeyProduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &Options{Register: tt.flag}
			cfg := &config.Config{DefaultRegister: tt.cfgValue}
			if got := resolveRegisterKey(opts, cfg); got != tt.want {
				t.Errorf("resolveRegisterKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRequireLabel(t *testing.T) {
	opts := &Options{RequireLabel: "custom"}
	cfg := &config.Config{MarkerLabel: "id assigned"}
	if got := resolveRequireLabel(opts, cfg); got != "custom" {
		t.Errorf("expected flag to win, got %q", got)
	}

	opts.RequireLabel = ""
	if got := resolveRequireLabel(opts, cfg); got != "id assigned" {
		t.Errorf("expected config fallback, got %q", got)
	}
}

func TestIssueCommandWithExplicitID(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := New()
	var out strings.Builder
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"issue", "--id", "2025-032", "--paper", "Some Paper", "--checker", "adaex", "--register", "testing"})

	if err := root.Execute(); err != nil {
		t.Fatalf("issue command failed: %v", err)
	}

	url := strings.TrimSpace(out.String())
	if !strings.HasPrefix(url, "https://github.com/codecheckers/testing-dev-register/issues/new?") {
		t.Errorf("unexpected URL: %q", url)
	}
	for _, want := range []string{"2025-032", "Some+Paper", "adaex"} {
		if !strings.Contains(url, want) {
			t.Errorf("expected URL to contain %q, got %q", want, url)
		}
	}
}

func TestIssueCommandUnknownKind(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := New()
	root.SetArgs([]string{"issue", "--id", "2025-032", "--kind", "festival"})
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown certificate kind")
	}
}
