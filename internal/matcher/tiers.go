package matcher

import (
	"strings"

	"ftp-m3u/internal/query"
)

// Policy holds the tunable thresholds of the matching tiers.
type Policy struct {
	// TokenRatio is the share of tokens that must appear for terms with
	// three or more tokens.
	TokenRatio float64
	// RequireFirstToken makes the first token mandatory for the ratio tier.
	RequireFirstToken bool
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{TokenRatio: 0.75, RequireFirstToken: true}
}

// Tier is one matching predicate. Predicates receive the lowercased,
// percent-decoded file name.
type Tier struct {
	Name  string
	Match func(p Policy, q query.Query, name string) bool
}

// Tiers is the ordered tier table. First match wins.
var Tiers = []Tier{
	{"phrase", matchPhrase},
	{"separator_phrase", matchSeparatorPhrase},
	{"token_ratio", matchTokenRatio},
	{"token_pair", matchTokenPair},
	{"year", matchYear},
}

func matchPhrase(_ Policy, q query.Query, name string) bool {
	if !strings.Contains(name, q.Lower) {
		return false
	}
	if len(q.Tokens) != 1 {
		return true
	}
	return query.ContainsWord(name, q.Tokens[0])
}

// matchSeparatorPhrase only applies to multi-word terms. For a single word
// the dotted form equals the plain term and would bypass the standalone-word
// check of the phrase tier.
func matchSeparatorPhrase(_ Policy, q query.Query, name string) bool {
	if len(strings.Fields(q.Lower)) < 2 {
		return false
	}
	return strings.Contains(name, q.Dotted) || strings.Contains(name, q.Underscored)
}

func matchTokenRatio(p Policy, q query.Query, name string) bool {
	if len(q.Tokens) < 3 {
		return false
	}
	if p.RequireFirstToken && !strings.Contains(name, q.Tokens[0]) {
		return false
	}
	ratio := float64(q.CountTokensIn(name)) / float64(len(q.Tokens))
	return ratio >= p.TokenRatio
}

func matchTokenPair(_ Policy, q query.Query, name string) bool {
	return len(q.Tokens) == 2 && q.CountTokensIn(name) == 2
}

func matchYear(_ Policy, q query.Query, name string) bool {
	if q.Year == "" || !strings.Contains(name, q.Year) {
		return false
	}
	for _, tok := range q.Tokens {
		if tok != q.Year && strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

// MatchName returns the first tier accepting name for q. name must already
// be percent-decoded; it is lowercased here.
func MatchName(p Policy, q query.Query, name string) (tier string, ok bool) {
	lower := strings.ToLower(name)
	for _, t := range Tiers {
		if t.Match(p, q, lower) {
			return t.Name, true
		}
	}
	return "", false
}
