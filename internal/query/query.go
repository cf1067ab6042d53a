// Package query turns a free-text search term into the normalized forms the
// explorer and matcher compare against remote names.
package query

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest token kept by Tokenize. Shorter words such
// as "of" or "a" are dropped.
const MinTokenLength = 3

var yearRe = regexp.MustCompile(`(19\d{2}|20\d{2})`)

// Query is a parsed search term.
type Query struct {
	// Raw is the term as supplied.
	Raw string
	// Lower is the lowercased term.
	Lower string
	// Dotted and Underscored replace whitespace runs with "." and "_".
	Dotted      string
	Underscored string
	// Tokens holds the lowercased whitespace-separated words of at least
	// MinTokenLength characters, in order.
	Tokens []string
	// Year is the first 19xx/20xx run found in the term, or "".
	Year string
}

// Parse builds a Query from a search term.
func Parse(term string) Query {
	lower := strings.ToLower(term)
	fields := strings.Fields(lower)

	q := Query{
		Raw:         term,
		Lower:       lower,
		Dotted:      strings.Join(fields, "."),
		Underscored: strings.Join(fields, "_"),
		Tokens:      tokensOf(fields),
	}
	if m := yearRe.FindString(lower); m != "" {
		q.Year = m
	}
	return q
}

// Tokenize returns the significant lowercased words of term.
func Tokenize(term string) []string {
	return tokensOf(strings.Fields(strings.ToLower(term)))
}

func tokensOf(fields []string) []string {
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// FirstRune returns the first character of the lowercased term and whether
// the term was non-empty.
func (q Query) FirstRune() (rune, bool) {
	for _, r := range q.Lower {
		return r, true
	}
	return 0, false
}

// AnyTokenIn reports whether s contains at least one token.
func (q Query) AnyTokenIn(s string) bool {
	for _, tok := range q.Tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// CountTokensIn returns how many tokens appear in s.
func (q Query) CountTokensIn(s string) int {
	n := 0
	for _, tok := range q.Tokens {
		if strings.Contains(s, tok) {
			n++
		}
	}
	return n
}

// ContainsWord reports whether word occurs in s with no ASCII letter or
// digit directly before or after it. Both arguments are expected lowercased.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; from <= len(s)-len(word); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return ('a' <= b && b <= 'z') || ('0' <= b && b <= '9')
}
