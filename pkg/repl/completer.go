package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isWordBoundary reports whether r ends an identifier for completion.
// '.' separates a namespace from its member.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/',
		'<', '>', '=', '!',
		',', ';', '"':
		return true
	}
	return false
}

// wordBounds returns the word around cursor and its byte offsets.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}
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

// byteOffset converts a cursor position counted in runes, as textinput
// reports it, to a byte offset into input.
func byteOffset(input string, pos int) int {
	runes := []rune(input)
	if pos > len(runes) {
		pos = len(runes)
	}
	return len(string(runes[:pos]))
}

// owner returns the identifier directly before the dot preceding
// wordStart, e.g. "Math" for "x + Math.fl". It is empty for top-level
// words.
func owner(input string, wordStart int) string {
	if wordStart == 0 || input[wordStart-1] != '.' {
		return ""
	}
	name, _, _ := wordBounds(input, wordStart-1)
	return strings.TrimSpace(name)
}

// candidates lists what the word at wordStart may complete to.
func candidates(s *Session, input string, wordStart int) []string {
	if strings.HasPrefix(strings.TrimSpace(input), ".") && strings.TrimSpace(input[:wordStart]) == "" {
		return commands
	}
	if name := owner(input, wordStart); name != "" {
		return s.Members(name)
	}
	return append(s.Names(), keywordNames...)
}

var keywordNames = []string{
	"and", "else", "false", "fun", "if", "nil", "or", "print", "return", "true", "var", "while",
}

// computeMatches ranks candidates for the word under the cursor, best
// first. After a dot with nothing typed yet, every member matches.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	word, wordStart, wordEnd := wordBounds(input, byteOffset(input, m.input.Position()))

	// Commands start with '.', which is a boundary for everything else.
	if isCommand(input) && wordStart == 1 && strings.TrimSpace(input[:wordStart]) == "." {
		word, wordStart = "."+word, 0
	}

	options := candidates(m.session, input, wordStart)
	if len(options) == 0 {
		return nil, wordStart, wordEnd
	}
	if word == "" {
		if owner(input, wordStart) == "" {
			return nil, wordStart, wordEnd
		}
		matches = make(fuzzy.Matches, len(options))
		for i, option := range options {
			matches[i] = fuzzy.Match{Str: option, Index: i}
		}
		return matches, wordStart, wordEnd
	}
	return fuzzy.Find(word, options), wordStart, wordEnd
}

// renderCandidates draws the completion bar, cut to fit width.
func renderCandidates(matches fuzzy.Matches, selected int, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}
	const sep = "  "
	ellipsis := hintStyle.Render("...")

	var b strings.Builder
	used := 0
	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)
		entry := lipgloss.Width(rendered)
		if i > 0 {
			entry += lipgloss.Width(sep)
		}
		if i > 0 && used+entry+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(rendered)
		used += entry
	}
	return b.String()
}

// renderCandidate highlights the matched characters of a candidate
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
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
