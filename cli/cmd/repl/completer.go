package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isWordBoundary reports whether r separates words for completion. Tokens
// are whitespace separated, and ';' separates expressions on one line.
func isWordBoundary(r rune) bool {
	return r == ';' || unicode.IsSpace(r)
}

// wordBounds returns the word at the cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completion is the fuzzy match state for the word at a cursor.
type completion struct {
	matches    fuzzy.Matches
	start, end int
}

// complete ranks candidates against the word at cursor, best first. An empty
// word matches nothing. Session commands are only offered for the first word
// of a line.
func complete(input string, cursor int, candidates []string) completion {
	word, start, end := wordBounds(input, cursor)
	c := completion{start: start, end: end}

	if word == "" {
		return c
	}

	first := strings.TrimSpace(input[:start]) == ""

	pool := candidates[:0:0]
	for _, cand := range candidates {
		if strings.HasPrefix(cand, ":") && !first {
			continue
		}

		pool = append(pool, cand)
	}

	c.matches = fuzzy.Find(word, pool)

	return c
}

// replace returns input with the completion's word replaced by s, and the
// cursor position after it.
func (c completion) replace(input, s string) (string, int) {
	return input[:c.start] + s + input[c.end:], c.start + len(s)
}

// lineCompleter returns a liner-style completer offering whole lines with
// the last word replaced by each candidate.
func lineCompleter(candidates func() []string) func(line string) []string {
	return func(line string) []string {
		c := complete(line, len(line), candidates())

		lines := make([]string, len(c.matches))
		for i, m := range c.matches {
			lines[i], _ = c.replace(line, m.Str)
		}

		return lines
	}
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
