package format

import "testing"

func TestStripAnsi(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"colored", "\033[31mred\033[0m", "red"},
		{"mixed", "a\033[1;32mb\033[0mc", "abc"},
		{"hyperlink", "\033]8;;https://example.org\033\\link\033]8;;\033\\", "link"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripAnsi(tt.input); got != tt.want {
				t.Errorf("StripAnsi(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "2025-031", 8},
		{"colored", "\033[31m2025-031\033[0m", 8},
		{"cjk", "論文", 4},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.input); got != tt.want {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	t.Run("fits untouched", func(t *testing.T) {
		if got := TruncateToWidth("short", 10); got != "short" {
			t.Errorf("expected untouched string, got %q", got)
		}
	})

	t.Run("truncates with ellipsis", func(t *testing.T) {
		got := TruncateToWidth("a very long register issue title", 10)
		if DisplayWidth(got) > 10 {
			t.Errorf("truncated width %d exceeds 10: %q", DisplayWidth(got), got)
		}
		if StripAnsi(got) != "a very ..." {
			t.Errorf("unexpected truncation: %q", StripAnsi(got))
		}
	})

	t.Run("preserves color codes", func(t *testing.T) {
		got := TruncateToWidth("\033[31mabcdefghijklmnop\033[0m", 8)
		if StripAnsi(got) != "abcde..." {
			t.Errorf("unexpected truncation: %q", got)
		}
	})

	t.Run("wide runes never split", func(t *testing.T) {
		got := TruncateToWidth("論文論文論文", 7)
		if DisplayWidth(got) > 7 {
			t.Errorf("truncated width %d exceeds 7: %q", DisplayWidth(got), got)
		}
	})
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 5); got != "abcdef" {
		t.Errorf("expected long string untouched, got %q", got)
	}
	if got := PadRight("論", 4); got != "論  " {
		t.Errorf("expected wide-aware padding, got %q", got)
	}
}
