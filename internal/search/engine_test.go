package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
)

func testTable() []refdata.ClassificationCode {
	return []refdata.ClassificationCode{
		{Code: "610910", Description: "T-shirts, cotton"},
		{Code: "610990", Description: "T-shirts, other textile"},
		{Code: "640399", Description: "Footwear, leather"},
		{Code: "950300", Description: "Toys"},
	}
}

func TestSearchBelowThresholdIsInactive(t *testing.T) {
	engine := NewEngine(testTable())

	for _, q := range []string{"", " ", "6", " 6 "} {
		result := engine.Search(q)
		assert.False(t, result.Active, "query %q should be inactive", q)
		assert.Empty(t, result.Matches)
	}
}

func TestSearchMatchesCodeSubstring(t *testing.T) {
	engine := NewEngine(testTable())

	result := engine.Search("6109")
	require.True(t, result.Active)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "610910", result.Matches[0].Code)
	assert.Equal(t, "610990", result.Matches[1].Code)
	assert.Equal(t, MatchedOnCode, result.Matches[0].MatchedOn)
}

func TestSearchMatchesDescriptionCaseInsensitive(t *testing.T) {
	engine := NewEngine(testTable())

	result := engine.Search("FOOTWEAR")
	require.True(t, result.Active)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "640399", result.Matches[0].Code)
	assert.Equal(t, MatchedOnDescription, result.Matches[0].MatchedOn)
}

func TestSearchEveryCodeFindsItself(t *testing.T) {
	table := refdata.Defaults().Codes
	engine := NewEngine(table)

	for _, entry := range table {
		result := engine.Search(entry.Code)
		require.True(t, result.Active)

		found := false
		for _, m := range result.Matches {
			if m.Code == entry.Code {
				found = true
				break
			}
		}
		assert.True(t, found, "code %s should match itself", entry.Code)
	}
}

func TestSearchCapsResults(t *testing.T) {
	table := make([]refdata.ClassificationCode, 0, MaxResults+10)
	for i := 0; i < MaxResults+10; i++ {
		table = append(table, refdata.ClassificationCode{Code: "999999", Description: "duplicate"})
	}
	engine := NewEngine(table)

	result := engine.Search("9999")
	assert.Len(t, result.Matches, MaxResults)
}

func TestSearchActiveWithNoMatches(t *testing.T) {
	engine := NewEngine(testTable())

	result := engine.Search("zzzz")
	assert.True(t, result.Active)
	assert.Empty(t, result.Matches)
}

func TestResolveExact(t *testing.T) {
	engine := NewEngine(testTable())

	entry, ok := engine.ResolveExact("610910")
	require.True(t, ok)
	assert.Equal(t, "T-shirts, cotton", entry.Description)

	_, ok = engine.ResolveExact("6109")
	assert.False(t, ok, "prefix should not resolve exactly")

	_, ok = engine.ResolveExact("")
	assert.False(t, ok)

	// Exact resolution works below the search activation threshold too
	short := NewEngine([]refdata.ClassificationCode{{Code: "6", Description: "single"}})
	_, ok = short.ResolveExact("6")
	assert.True(t, ok)
}

func TestHead(t *testing.T) {
	engine := NewEngine(testTable())

	assert.Len(t, engine.Head(2), 2)
	assert.Len(t, engine.Head(100), 4)
}
