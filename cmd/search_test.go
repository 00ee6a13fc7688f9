package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/pkg/googlecse"
)

func TestSearchHits(t *testing.T) {
	items := []googlecse.Item{
		{
			Title:   "Jane Doe - CTO at Acme GmbH - LinkedIn",
			Link:    "https://de.linkedin.com/in/jane-doe",
			Snippet: "Stuttgart · CTO · Acme GmbH",
			PageMap: googlecse.PageMap{Metatags: []map[string]string{{
				"og:title":           "Jane Doe - CTO at Acme GmbH | LinkedIn",
				"og:description":     "Experience: Acme GmbH · Location: Stuttgart · 500+ connections",
				"og:url":             "https://de.linkedin.com/in/jane-doe",
				"profile:first_name": "Jane",
				"profile:last_name":  "Doe",
			}}},
		},
		{Title: "Plain result", Link: "https://example.com"},
	}

	hits := searchHits(items)
	require.Len(t, hits, 2)

	assert.Equal(t, "https://de.linkedin.com/in/jane-doe", hits[0].Link)
	require.Len(t, hits[0].Metatags, 1)
	assert.Equal(t, "Jane", hits[0].Metatags[0].FirstName)
	assert.Equal(t, "Doe", hits[0].Metatags[0].LastName)
	assert.Contains(t, hits[0].Metatags[0].OGDescription, "500+ connections")

	assert.Empty(t, hits[1].Metatags)
}

func TestPtrFormatting(t *testing.T) {
	n := 42
	yes := true

	assert.Equal(t, "42", intPtrString(&n))
	assert.Equal(t, "", intPtrString(nil))
	assert.Equal(t, "yes", boolPtrString(&yes))
	assert.Equal(t, "", boolPtrString(nil))
}
