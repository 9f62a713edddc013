// Package search builds the ranked full-text query forms used by the
// repositories. It is pure: sanitization, query construction, and the
// ranking formula live here so they are testable without a database.
//
// The query strings target PostgreSQL to_tsquery() syntax. The store
// executes them against weighted tsvectors (name weighted above
// description) and orders by the weighted score computed by Score.
package search

import (
	"fmt"
	"strings"

	domain "github.com/ghuser/stockroom/services/inventory/domain"
)

// MaxLimit is the upper bound on a single search page.
const MaxLimit = 100

// Relative weights for the three query forms. A phrase match outranks an
// all-words match, which outranks an any-word match; a document matching
// several forms accumulates weight from each.
const (
	PhraseWeight = 3
	AndWeight    = 2
	OrWeight     = 1
)

// tsquery operators and other characters with special meaning to the
// PostgreSQL query parser; each is replaced with a space during sanitization.
const reservedChars = "&|!:()'"

// QuerySet holds the three to_tsquery forms derived from one search term.
// A document matches when it satisfies any of the three.
type QuerySet struct {
	Phrase string // words joined with <-> : exact ordered phrase
	And    string // words joined with &   : every word must appear
	Or     string // words joined with |   : any word may appear
}

// Sanitize trims the term, replaces tsquery metacharacters with spaces, and
// collapses whitespace runs, producing a term safe to embed in all three
// query forms.
func Sanitize(term string) string {
	replaced := strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedChars, r) {
			return ' '
		}
		return r
	}, term)
	return strings.Join(strings.Fields(replaced), " ")
}

// BuildQuerySet sanitizes term and derives the phrase/AND/OR query forms
// from its words. ok is false when the sanitized term is empty; callers
// choose their blank-term policy (reject or fall back to enumeration).
// A single-word term collapses all three forms to that word.
func BuildQuerySet(term string) (qs QuerySet, ok bool) {
	sanitized := Sanitize(term)
	if sanitized == "" {
		return QuerySet{}, false
	}
	words := strings.Split(sanitized, " ")
	return QuerySet{
		Phrase: strings.Join(words, " <-> "),
		And:    strings.Join(words, " & "),
		Or:     strings.Join(words, " | "),
	}, true
}

// Score combines the three per-form relevance ranks into the final ranking
// score. Documents matching no form are excluded by the predicate, never
// scored.
func Score(phraseRank, andRank, orRank float64) float64 {
	return PhraseWeight*phraseRank + AndWeight*andRank + OrWeight*orRank
}

// ValidatePage enforces the pagination contract: offset >= 0 and
// 0 < limit <= MaxLimit. Violations fail before any query executes.
func ValidatePage(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", domain.ErrInvalidArgument, offset)
	}
	if limit <= 0 || limit > MaxLimit {
		return fmt.Errorf("%w: limit must be in (0, %d], got %d", domain.ErrInvalidArgument, MaxLimit, limit)
	}
	return nil
}
