// Package matching holds the pure text-matching primitives of the assistant:
// query normalization, ordered rule tables, topic matching and the two
// domain detectors.
package matching

import (
	"strings"
	"unicode"
)

// Query is one normalized user input. All matching runs on Text, Bare or
// Words; Raw is kept for echoing back to the user.
type Query struct {
	Raw   string
	Text  string
	Bare  string
	Words []string
}

// NewQuery lowercases and trims raw and splits it into punctuation-trimmed words.
func NewQuery(raw string) Query {
	text := strings.ToLower(strings.TrimSpace(raw))
	q := Query{
		Raw:  raw,
		Text: text,
		Bare: strings.TrimRight(text, "?!.,;: "),
	}
	for _, f := range strings.Fields(text) {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			q.Words = append(q.Words, w)
		}
	}
	return q
}

// Empty reports whether the query has no content.
func (q Query) Empty() bool {
	return q.Text == ""
}

// WordCount is the number of whitespace-separated tokens.
func (q Query) WordCount() int {
	return len(strings.Fields(q.Text))
}

// HasWord reports whole-word containment.
func (q Query) HasWord(word string) bool {
	for _, w := range q.Words {
		if w == word {
			return true
		}
	}
	return false
}

// HasTerm matches a single word as a whole word and a multi-word term as a
// contiguous run of words.
func (q Query) HasTerm(term string) bool {
	parts := strings.Fields(strings.ToLower(term))
	switch len(parts) {
	case 0:
		return false
	case 1:
		return q.HasWord(parts[0])
	}
	for i := 0; i+len(parts) <= len(q.Words); i++ {
		match := true
		for j, p := range parts {
			if q.Words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// HasPhrase reports substring containment in the normalized text.
func (q Query) HasPhrase(phrase string) bool {
	return phrase != "" && strings.Contains(q.Text, phrase)
}

// CountTerms returns how many of terms HasTerm matches.
func (q Query) CountTerms(terms []string) int {
	n := 0
	for _, t := range terms {
		if q.HasTerm(t) {
			n++
		}
	}
	return n
}

// AnyTerm reports whether any of terms matches as a whole word or word run.
func (q Query) AnyTerm(terms ...string) bool {
	for _, t := range terms {
		if q.HasTerm(t) {
			return true
		}
	}
	return false
}

// AnyPhrase reports whether any of phrases is a substring of the text.
func (q Query) AnyPhrase(phrases ...string) bool {
	for _, p := range phrases {
		if q.HasPhrase(p) {
			return true
		}
	}
	return false
}
