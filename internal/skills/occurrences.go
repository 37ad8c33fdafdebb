package skills

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultContextChars is the number of characters kept on each side of a match in a
// provenance snippet.
const DefaultContextChars = 40

// Occurrences maps a canonical skill to the snippets of text it was found in.
// Snippets are unique per skill and kept in first-seen order. Skills that were not
// found are absent.
type Occurrences map[string][]string

// Skills returns the canonical keys present, sorted.
func (o Occurrences) Skills() []string {
	keys := make([]string, 0, len(o))
	for k, snippets := range o {
		if len(snippets) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// FindOccurrences scans text with every pattern, in table order, and collects a
// provenance snippet of up to contextChars characters either side of each match.
func (m *Matcher) FindOccurrences(text string, contextChars int) Occurrences {
	occ := make(Occurrences)
	if text == "" {
		return occ
	}
	if contextChars < 0 {
		contextChars = 0
	}

	seen := make(map[string]map[string]struct{})
	for _, p := range m.patterns {
		for _, span := range p.find(text) {
			snippet := snippetAround(text, span[0], span[1], contextChars)
			if seen[p.Key] == nil {
				seen[p.Key] = make(map[string]struct{})
			}
			if _, dup := seen[p.Key][snippet]; dup {
				continue
			}
			seen[p.Key][snippet] = struct{}{}
			occ[p.Key] = append(occ[p.Key], snippet)
		}
	}
	return occ
}

// ExtractSkills returns the sorted canonical skills found in text together with
// their provenance.
func (m *Matcher) ExtractSkills(text string, contextChars int) ([]string, Occurrences) {
	occ := m.FindOccurrences(text, contextChars)
	return occ.Skills(), occ
}

// snippetAround returns text[start:end] widened by up to n runes on each side,
// clipped to the text and trimmed of surrounding whitespace.
func snippetAround(text string, start, end, n int) string {
	from := start
	for i := 0; i < n && from > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}
	to := end
	for i := 0; i < n && to < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}
	return strings.TrimSpace(text[from:to])
}
