package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codecheckers/regclerk/internal/constants"
	"github.com/codecheckers/regclerk/internal/roster"
)

// searchResultsMsg delivers debounced search results to the model.
type searchResultsMsg struct {
	matches []roster.Match
}

// searchState is shared across model copies so the debouncer and result
// channel survive Bubble Tea's value semantics.
type searchState struct {
	debouncer *roster.Debouncer
	results   chan []roster.Match
	waiting   bool
	selected  *roster.Checker
}

// SearchModel is the interactive checker search over the roster. Typing
// reruns the search after a quiet period; Enter picks the highlighted
// checker.
type SearchModel struct {
	input    textinput.Model
	checkers []roster.Checker
	matches  []roster.Match
	cursor   int
	state    *searchState
}

// NewSearchModel creates the search model over the given roster.
func NewSearchModel(checkers []roster.Checker) SearchModel {
	input := textinput.New()
	input.Placeholder = "name, handle or skill"
	input.Prompt = "Search: "
	input.Focus()

	return SearchModel{
		input:    input,
		checkers: checkers,
		state: &searchState{
			debouncer: roster.NewDebouncer(constants.SearchDebounceQuiet),
			results:   make(chan []roster.Match, 1),
		},
	}
}

// Selected returns the checker picked with Enter, or nil.
func (m SearchModel) Selected() *roster.Checker {
	return m.state.selected
}

// Init initializes the model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.state.debouncer.Stop()
			return m, tea.Quit
		case "enter":
			if m.cursor < len(m.matches) {
				c := m.matches[m.cursor].Checker
				m.state.selected = &c
			}
			m.state.debouncer.Stop()
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}

		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			return m, tea.Batch(cmd, m.scheduleSearch(m.input.Value()))
		}
		return m, cmd

	case searchResultsMsg:
		m.state.waiting = false
		m.matches = msg.matches
		if m.cursor >= len(m.matches) {
			m.cursor = 0
		}
		// A newer query may have been scheduled while this delivery was in
		// flight; keep a waiter armed so its results are not stranded.
		return m, m.waitForResults()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// scheduleSearch debounces the query: a burst of keystrokes produces one
// search.
func (m SearchModel) scheduleSearch(query string) tea.Cmd {
	st := m.state
	st.debouncer.Schedule(func() {
		matches := roster.Search(m.checkers, query)
		select {
		case st.results <- matches:
		default:
			// Replace a stale, unconsumed result.
			select {
			case <-st.results:
			default:
			}
			st.results <- matches
		}
	})
	return m.waitForResults()
}

// waitForResults arms the single outstanding delivery command. A result
// already sitting in the channel is delivered straight away; otherwise a
// waiter is started only while a debounced search is still pending, so no
// command ever blocks on a channel nothing will write to.
func (m SearchModel) waitForResults() tea.Cmd {
	st := m.state
	if st.waiting {
		return nil
	}
	if st.debouncer.Pending() {
		st.waiting = true
		return func() tea.Msg {
			return searchResultsMsg{matches: <-st.results}
		}
	}
	select {
	case matches := <-st.results:
		st.waiting = true
		return func() tea.Msg {
			return searchResultsMsg{matches: matches}
		}
	default:
		return nil
	}
}

// View renders the search prompt and current matches.
func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + m.input.View() + "\n\n")

	if len(m.matches) == 0 {
		if m.input.Value() != "" {
			b.WriteString(taskDimStyle.Render("  No matching checkers") + "\n")
		}
	}

	for i, match := range m.matches {
		c := match.Checker
		line := fmt.Sprintf("%s  %s", handleStyle.Render("@"+c.Handle), c.Name)
		if len(c.Skills) > 0 {
			line += messageStyle.Render("  " + strings.Join(c.Skills, ", "))
		}
		if i == m.cursor {
			b.WriteString("  " + selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}

	b.WriteString(footerStyle.Render("\n  Enter to pick, Esc to quit"))
	b.WriteString("\n")
	return b.String()
}
