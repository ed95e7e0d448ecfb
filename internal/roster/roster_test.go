package roster

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	csv := `Name,GitHub,ORCID,Skills
Ada Example,adaex,0000-0001-2345-6789,R; Python
Ben Tester,@bent,,Docker
,,,
No Handle,,,"Stata"
`
	checkers, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(checkers) != 3 {
		t.Fatalf("expected 3 checkers, got %d: %+v", len(checkers), checkers)
	}

	ada := checkers[0]
	if ada.Name != "Ada Example" || ada.Handle != "adaex" || ada.ORCID != "0000-0001-2345-6789" {
		t.Errorf("unexpected first checker: %+v", ada)
	}
	if len(ada.Skills) != 2 || ada.Skills[0] != "R" || ada.Skills[1] != "Python" {
		t.Errorf("expected skills [R Python], got %v", ada.Skills)
	}

	if checkers[1].Handle != "bent" {
		t.Errorf("expected leading @ stripped, got %q", checkers[1].Handle)
	}
	if checkers[2].Name != "No Handle" {
		t.Errorf("expected row with name but no handle kept, got %+v", checkers[2])
	}
}

func TestParseHeaderAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"lowercase", "name,github,skills,orcid"},
		{"handle alias", "Name,Handle,Skills,ORCID"},
		{"spaced alias", "Name,GitHub Handle,Expertise,ORCID iD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := tt.header + "\nAda Example,adaex,R,0000-0001-2345-6789\n"
			checkers, err := Parse(strings.NewReader(csv))
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if len(checkers) != 1 || checkers[0].Handle != "adaex" {
				t.Errorf("header %q: got %+v", tt.header, checkers)
			}
		})
	}
}

func TestParseNoNameColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("foo,bar\n1,2\n"))
	if err == nil {
		t.Fatal("expected error for roster without a name column")
	}
}

func TestParsePipeSkills(t *testing.T) {
	checkers, err := Parse(strings.NewReader("name,github,skills\nAda,adaex,R|Python|Julia\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(checkers[0].Skills) != 3 {
		t.Errorf("expected 3 skills, got %v", checkers[0].Skills)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("name,github\nAda Example,adaex\n"))
	}))
	defer srv.Close()

	checkers, err := Fetch(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(checkers) != 1 || checkers[0].Name != "Ada Example" {
		t.Errorf("unexpected checkers: %+v", checkers)
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := Fetch(t.Context(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestSearch(t *testing.T) {
	checkers := []Checker{
		{Name: "Ada Example", Handle: "adaex", Skills: []string{"R", "Python"}},
		{Name: "Ben Tester", Handle: "bent", Skills: []string{"Docker"}},
		{Name: "Radmila Novak", Handle: "rnovak", Skills: []string{"MATLAB"}},
	}

	tests := []struct {
		query     string
		wantFirst string
		wantN     int
	}{
		{"ada", "adaex", 1},
		{"ben", "bent", 1},
		{"r", "rnovak", 2},      // handle prefix beats skill match on R
		{"python", "adaex", 1},  // skill match
		{"EXAMPLE", "adaex", 1}, // case-insensitive
		{"", "", 0},
		{"zzz", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches := Search(checkers, tt.query)
			if len(matches) != tt.wantN {
				t.Fatalf("query %q: expected %d matches, got %d: %+v", tt.query, tt.wantN, len(matches), matches)
			}
			if tt.wantN > 0 && matches[0].Checker.Handle != tt.wantFirst {
				t.Errorf("query %q: expected first match %q, got %q", tt.query, tt.wantFirst, matches[0].Checker.Handle)
			}
		})
	}
}

func TestSearchOrdering(t *testing.T) {
	checkers := []Checker{
		{Name: "Xavier Doe", Handle: "containsdoe"},
		{Name: "Doe Smith", Handle: "zz"},
		{Name: "Zara", Handle: "doe"},
	}
	matches := Search(checkers, "doe")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	// Handle prefix, then name prefix, then substring.
	want := []string{"doe", "zz", "containsdoe"}
	for i, w := range want {
		if matches[i].Checker.Handle != w {
			t.Errorf("position %d: expected handle %q, got %q", i, w, matches[i].Checker.Handle)
		}
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Schedule(func() { fired.Add(1) })
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one firing after burst, got %d", got)
	}
}

func TestDebouncerPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	if d.Pending() {
		t.Error("expected no pending run before Schedule")
	}

	d.Schedule(func() {})
	if !d.Pending() {
		t.Error("expected pending run right after Schedule")
	}

	deadline := time.Now().Add(time.Second)
	for d.Pending() {
		if time.Now().After(deadline) {
			t.Fatal("pending never cleared after firing")
		}
		time.Sleep(5 * time.Millisecond)
	}

	d.Schedule(func() {})
	d.Stop()
	if d.Pending() {
		t.Error("expected Stop to clear the pending run")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no firing after Stop, got %d", got)
	}
}
