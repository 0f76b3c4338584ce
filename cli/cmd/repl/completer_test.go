package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "sqrt", 4, "sqrt", 0, 4},
		{"after_space", "+ x fo", 6, "fo", 4, 6},
		{"operator", "+ 1 <=", 6, "<=", 4, 6},
		{"after_semicolon", "var x 1;fo", 10, "fo", 8, 10},
		{"empty_at_boundary", "+ ", 2, "", 2, 2},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo bar", 0, "foo", 0, 3},
		{"command", ":en", 3, ":en", 0, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	candidates := []string{":env", ":examples", "exp", "exp2", "sqrt", "sum", "xprint"}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"prefix", "sq", []string{"sqrt"}},
		{"fuzzy", "+ 1 sm", []string{"sum"}},
		{"command_first_word", ":e", []string{":env", ":examples"}},
		{"command_not_offered_later", "+ 1 :e", nil},
		{"empty_word", "+ 1 ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := complete(tt.input, len(tt.input), candidates)

			var got []string
			for _, m := range c.matches {
				got = append(got, m.Str)
			}

			slices.Sort(got)

			if !slices.Equal(got, tt.want) {
				t.Errorf("complete(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompletionReplace(t *testing.T) {
	c := complete("+ x sq 4", 6, []string{"sqrt"})

	got, cursor := c.replace("+ x sq 4", "sqrt")
	if got != "+ x sqrt 4" || cursor != 8 {
		t.Errorf("replace() = %q, %d", got, cursor)
	}
}

func TestLineCompleter(t *testing.T) {
	lines := lineCompleter(func() []string { return []string{"sqrt", "sinh"} })("+ 1 sq")

	if !slices.Equal(lines, []string{"+ 1 sqrt"}) {
		t.Errorf("lines = %q", lines)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("s", []string{"sqrt", "sin", "sinh", "sign", "sec"})

	full := renderCandidateBar(matches, 0, true, 200)
	for _, m := range matches {
		if !strings.Contains(full, m.Str) {
			t.Errorf("bar %q missing %q", full, m.Str)
		}
	}

	if narrow := renderCandidateBar(matches, -1, false, 12); !strings.HasSuffix(narrow, "...") {
		t.Errorf("narrow bar %q not ellipsized", narrow)
	}

	if renderCandidateBar(nil, 0, false, 80) != "" {
		t.Error("empty matches rendered")
	}
}
