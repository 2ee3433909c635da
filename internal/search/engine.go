package search

import (
	"strings"

	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
)

const (
	// MinQueryLen is the minimum trimmed query length that activates search
	MinQueryLen = 2

	// MaxResults caps the suggestion list
	MaxResults = 15
)

// MatchField reports which field of a classification code matched the query
type MatchField string

const (
	MatchedOnCode        MatchField = "code"
	MatchedOnDescription MatchField = "description"
)

// Match is one suggestion entry
type Match struct {
	Code        string     `json:"code"`
	Description string     `json:"description"`
	MatchedOn   MatchField `json:"matchedOn"`
}

// Result is the outcome of one search invocation. Active is false when the
// query was below the activation threshold; the caller must hide any
// suggestion surface in that case. Zero matches with Active true is a valid
// "no matches" result, not an error.
type Result struct {
	Active  bool    `json:"active"`
	Query   string  `json:"query"`
	Matches []Match `json:"matches"`
}

// Engine performs incremental substring search over the classification table
type Engine struct {
	table []refdata.ClassificationCode
}

// NewEngine creates a search engine over the given table
func NewEngine(table []refdata.ClassificationCode) *Engine {
	return &Engine{table: table}
}

// Search runs the incremental matcher. Codes match on a raw substring of the
// trimmed query, descriptions on a lowercased substring. Table order is
// preserved and the result is capped at MaxResults.
func (e *Engine) Search(query string) Result {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < MinQueryLen {
		return Result{Active: false, Query: trimmed}
	}

	lowered := strings.ToLower(trimmed)
	matches := make([]Match, 0, MaxResults)

	for _, entry := range e.table {
		if len(matches) >= MaxResults {
			break
		}

		if strings.Contains(entry.Code, trimmed) {
			matches = append(matches, Match{
				Code:        entry.Code,
				Description: entry.Description,
				MatchedOn:   MatchedOnCode,
			})
			continue
		}

		if strings.Contains(strings.ToLower(entry.Description), lowered) {
			matches = append(matches, Match{
				Code:        entry.Code,
				Description: entry.Description,
				MatchedOn:   MatchedOnDescription,
			})
		}
	}

	return Result{Active: true, Query: trimmed, Matches: matches}
}

// ResolveExact is the always-on exact-match side channel: it reports whether
// the raw trimmed input equals some code exactly. It runs independently of
// Search and is not subject to the activation threshold or the result cap.
func (e *Engine) ResolveExact(raw string) (refdata.ClassificationCode, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return refdata.ClassificationCode{}, false
	}

	for _, entry := range e.table {
		if entry.Code == trimmed {
			return entry, true
		}
	}
	return refdata.ClassificationCode{}, false
}

// Head returns the leading slice of the table, used when a query is below
// the activation threshold and the caller still wants default suggestions.
func (e *Engine) Head(n int) []refdata.ClassificationCode {
	if n > len(e.table) {
		n = len(e.table)
	}
	return e.table[:n]
}
