// Package format provides text helpers for terminal table output.
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches SGR escape sequences and OSC 8 hyperlink markers, both
// of which occupy zero terminal columns.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\][^\x1b]*\x1b\\`)

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of a string in terminal columns,
// ignoring ANSI escape sequences. Paper titles in register issues regularly
// carry CJK and other wide characters, so byte or rune counts are not enough.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// TruncateToWidth shortens a string to at most maxWidth display columns,
// appending "..." when it had to cut. ANSI sequences are carried through
// without counting toward the width, and a reset is appended after a cut so
// a color open at the cut point does not bleed into the next column.
func TruncateToWidth(s string, maxWidth int) string {
	if DisplayWidth(s) <= maxWidth {
		return s
	}

	target := maxWidth - 3
	if target < 0 {
		target = 0
	}

	matches := ansiRegex.FindAllStringIndex(s, -1)

	var b strings.Builder
	width := 0
	pos := 0
	next := 0
	for pos < len(s) {
		if next < len(matches) && pos == matches[next][0] {
			b.WriteString(s[matches[next][0]:matches[next][1]])
			pos = matches[next][1]
			next++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[pos:])
		rw := runewidth.RuneWidth(r)
		if width+rw > target {
			break
		}
		b.WriteString(s[pos : pos+size])
		width += rw
		pos += size
	}

	b.WriteString("...\033[0m")
	return b.String()
}

// PadRight pads a string with spaces to the target visible width.
func PadRight(s string, targetWidth int) string {
	w := DisplayWidth(s)
	if w >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-w)
}
