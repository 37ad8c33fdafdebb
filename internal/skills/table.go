// Package skills detects canonical skills in free text using whole-word synonym patterns.
package skills

import "regexp"

// Entry is a canonical skill and the synonym patterns that identify it.
//
// Synonyms are regular expression fragments, not literals: a synonym containing
// metacharacters must be escaped by whoever writes the table (`c\+\+`, not `c++`).
// Literal does that escaping. Matching is always case-insensitive and whole-word.
// Alternation order does not matter: when the first alternative found at a position
// is not a whole word, longer alternatives starting there are tried.
type Entry struct {
	Key      string   `json:"key" yaml:"key" validate:"required"`
	Synonyms []string `json:"synonyms" yaml:"synonyms" validate:"min=1,dive,required"`
}

// Table is an ordered list of canonical skills. Its order fixes the order in which
// patterns are applied, so provenance output is reproducible.
type Table []Entry

// Keys returns the canonical keys in table order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, e := range t {
		keys[i] = e.Key
	}
	return keys
}

// Validate checks that keys are non-empty and unique and that every entry has synonyms.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for _, e := range t {
		if e.Key == "" {
			return &TableError{Message: "canonical key is empty"}
		}
		if _, dup := seen[e.Key]; dup {
			return &TableError{Key: e.Key, Message: "duplicate canonical key"}
		}
		seen[e.Key] = struct{}{}
		if len(e.Synonyms) == 0 {
			return &TableError{Key: e.Key, Message: "synonym list is empty"}
		}
		for _, syn := range e.Synonyms {
			if syn == "" {
				return &TableError{Key: e.Key, Message: "synonym is empty"}
			}
		}
	}
	return nil
}

// Literal escapes s so it can be used as a synonym that matches s verbatim.
func Literal(s string) string {
	return regexp.QuoteMeta(s)
}

// DefaultTable returns the built-in skill vocabulary. A fresh copy is returned on
// every call so callers may extend it without affecting anyone else.
func DefaultTable() Table {
	return Table{
		{Key: "python", Synonyms: []string{"python"}},
		{Key: "machine_learning", Synonyms: []string{"machine learning", "ml", "deep learning"}},
		{Key: "java", Synonyms: []string{"java"}},
		{Key: "javascript", Synonyms: []string{"javascript", "js"}},
		{Key: "react", Synonyms: []string{"react", "react.js", "reactjs"}},
		{Key: "node", Synonyms: []string{"node", "node.js", "nodejs"}},
		{Key: "sql", Synonyms: []string{"sql", "structured query language"}},
		{Key: "aws", Synonyms: []string{"aws", "amazon web services"}},
		{Key: "docker", Synonyms: []string{"docker", "containers", "containerization"}},
		{Key: "kubernetes", Synonyms: []string{"kubernetes", "k8s"}},
		{Key: "c++", Synonyms: []string{`c\+\+`}},
		{Key: "c#", Synonyms: []string{"c#"}},
		{Key: "go", Synonyms: []string{"go", "golang"}},
		{Key: "ruby", Synonyms: []string{"ruby"}},
		{Key: "php", Synonyms: []string{"php"}},
		{Key: "html", Synonyms: []string{"html"}},
		{Key: "css", Synonyms: []string{"css"}},
		{Key: "tensorflow", Synonyms: []string{"tensorflow"}},
		{Key: "pytorch", Synonyms: []string{"pytorch"}},
		{Key: "nlp", Synonyms: []string{"nlp", "natural language processing"}},
		{Key: "linux", Synonyms: []string{"linux"}},
	}
}
