package tokenizer

import (
	"sort"
	"strings"
)

// TokenSet is a set of normalized tokens. Order is irrelevant and duplicates collapse.
type TokenSet map[string]struct{}

// Normalizer turns field text into filtered tokens.
// It is read-only after construction and safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
}

// NewNormalizer creates a Normalizer that drops the given stopwords.
// Stopwords are matched case-insensitively.
func NewNormalizer(stopwords []string) *Normalizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{stopwords: set}
}

// IsStopword reports whether token is filtered out.
func (n *Normalizer) IsStopword(token string) bool {
	_, ok := n.stopwords[strings.ToLower(token)]
	return ok
}

// Tokenize converts a string into a slice of tokens.
// It lowercases the string, splits on whitespace and drops stopwords. Punctuation attached
// to a word stays part of it ("vehicle," and "vehicle" are different tokens).
func (n *Normalizer) Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields)) // Initialize as empty slice, not nil
	for _, f := range fields {
		if _, stop := n.stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenSet returns the distinct tokens of text.
func (n *Normalizer) TokenSet(text string) TokenSet {
	tokens := n.Tokenize(text)
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether token is in the set.
func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// IntersectionSize returns the number of tokens present in both sets.
func (s TokenSet) IntersectionSize(other TokenSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for t := range small {
		if _, ok := large[t]; ok {
			count++
		}
	}
	return count
}

// Intersection returns the shared tokens in lexical order.
func (s TokenSet) Intersection(other TokenSet) []string {
	shared := make([]string, 0)
	for t := range s {
		if _, ok := other[t]; ok {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	return shared
}

// Sorted returns the set's tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
