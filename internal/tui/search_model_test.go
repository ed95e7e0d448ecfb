package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codecheckers/regclerk/internal/roster"
)

func testRoster() []roster.Checker {
	return []roster.Checker{
		{Name: "Ada Example", Handle: "adaex", Skills: []string{"R"}},
		{Name: "Ben Tester", Handle: "bent", Skills: []string{"Docker"}},
	}
}

func TestSearchModelCursor(t *testing.T) {
	m := NewSearchModel(testRoster())
	m.matches = roster.Search(testRoster(), "e")
	if len(m.matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(m.matches))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(SearchModel)
	if m.cursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", m.cursor)
	}

	// Cursor stops at the last match.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(SearchModel)
	if m.cursor != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(SearchModel)
	if m.cursor != 0 {
		t.Errorf("expected cursor 0 after up, got %d", m.cursor)
	}
}

func TestSearchModelEnterSelects(t *testing.T) {
	m := NewSearchModel(testRoster())
	m.matches = roster.Search(testRoster(), "ada")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SearchModel)

	selected := m.Selected()
	if selected == nil || selected.Handle != "adaex" {
		t.Errorf("expected adaex selected, got %+v", selected)
	}
}

func TestSearchModelEscSelectsNothing(t *testing.T) {
	m := NewSearchModel(testRoster())
	m.matches = roster.Search(testRoster(), "ada")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SearchModel)

	if m.Selected() != nil {
		t.Errorf("expected no selection after esc, got %+v", m.Selected())
	}
}

func TestSearchModelDeliversResultsArrivingMidUpdate(t *testing.T) {
	m := NewSearchModel(testRoster())

	// A newer query's results landed in the channel while the previous
	// delivery was still being handled; handling must arm a follow-up
	// command so they are not stranded.
	m.state.waiting = true
	m.state.results <- roster.Search(testRoster(), "ben")

	next, cmd := m.Update(searchResultsMsg{matches: roster.Search(testRoster(), "ada")})
	m = next.(SearchModel)
	if cmd == nil {
		t.Fatal("expected a follow-up command for the undelivered results")
	}

	msg, ok := cmd().(searchResultsMsg)
	if !ok {
		t.Fatalf("expected searchResultsMsg, got %T", cmd())
	}
	next, _ = m.Update(msg)
	m = next.(SearchModel)

	if len(m.matches) != 1 || m.matches[0].Checker.Handle != "bent" {
		t.Fatalf("expected the newer query's match, got %+v", m.matches)
	}
}

func TestSearchModelResults(t *testing.T) {
	m := NewSearchModel(testRoster())
	m.cursor = 5

	next, _ := m.Update(searchResultsMsg{matches: roster.Search(testRoster(), "ben")})
	m = next.(SearchModel)

	if len(m.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(m.matches))
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor reset for shorter result set, got %d", m.cursor)
	}
}
