package skills

import (
	"regexp"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Pattern is one compiled synonym of a canonical skill.
type Pattern struct {
	Key     string
	Synonym string
	re      *regexp.Regexp
	// longest and exact are anchored forms of re used to find the other
	// matches that begin where a rejected match began.
	longest *regexp.Regexp
	exact   *regexp.Regexp
}

// Matcher is a compiled skill table. It is immutable once built and safe for
// concurrent use.
type Matcher struct {
	patterns []Pattern
	keys     []string
}

var defaultMatcher = sync.OnceValue(func() *Matcher {
	return MustCompile(DefaultTable())
})

// Default returns the matcher for DefaultTable, compiled on first use.
func Default() *Matcher {
	return defaultMatcher()
}

// Compile builds a Matcher from table. Synonyms are used as given (see Entry).
func Compile(table Table) (*Matcher, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{keys: table.Keys()}
	for _, e := range table {
		for _, syn := range e.Synonyms {
			p, err := compilePattern(e.Key, syn)
			if err != nil {
				return nil, err
			}
			m.patterns = append(m.patterns, p)
		}
	}
	return m, nil
}

func compilePattern(key, syn string) (Pattern, error) {
	re, err := regexp.Compile(`(?i)` + syn)
	if err != nil {
		return Pattern{}, &CompileError{Key: key, Synonym: syn, Cause: err}
	}
	longest, err := regexp.Compile(`(?i)^(?:` + syn + `)`)
	if err != nil {
		return Pattern{}, &CompileError{Key: key, Synonym: syn, Cause: err}
	}
	longest.Longest()
	exact, err := regexp.Compile(`(?i)^(?:` + syn + `)$`)
	if err != nil {
		return Pattern{}, &CompileError{Key: key, Synonym: syn, Cause: err}
	}
	return Pattern{Key: key, Synonym: syn, re: re, longest: longest, exact: exact}, nil
}

// MustCompile is like Compile but panics on error. Intended for built-in tables.
func MustCompile(table Table) *Matcher {
	m, err := Compile(table)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of canonical skills in the table.
func (m *Matcher) Len() int {
	return len(m.keys)
}

// Keys returns the canonical keys in table order.
func (m *Matcher) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Patterns returns the compiled patterns in application order.
func (m *Matcher) Patterns() []Pattern {
	return append([]Pattern(nil), m.patterns...)
}

// find returns the byte spans of all non-overlapping whole-word matches of p in text.
// A match is whole-word when it is neither preceded nor followed by a word rune,
// whatever characters the synonym itself starts or ends with.
func (p Pattern) find(text string) [][2]int {
	var spans [][2]int
	pos := 0
	for pos <= len(text) {
		loc := p.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && isWholeWord(text, start, end) {
			spans = append(spans, [2]int{start, end})
			pos = end
			continue
		}
		if alt, ok := p.alternative(text, start); ok {
			spans = append(spans, [2]int{start, alt})
			pos = alt
			continue
		}
		// Rejected candidate: retry one rune further so an overlapping match is not lost.
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return spans
}

// alternative looks for a whole-word match starting at start other than the
// leftmost-first one, so `node|nodejs` still finds "nodejs". The longest match
// bounds the search and longer candidates win.
func (p Pattern) alternative(text string, start int) (int, bool) {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return 0, false
		}
	}
	loc := p.longest.FindStringIndex(text[start:])
	if loc == nil {
		return 0, false
	}
	for end := start + loc[1]; end > start; {
		if isWholeWord(text, start, end) && p.exact.MatchString(text[start:end]) {
			return end, true
		}
		_, size := utf8.DecodeLastRuneInString(text[start:end])
		end -= size
	}
	return 0, false
}

func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
