package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

type stubFieldExtractor struct {
	fields LLMFields
	err    error
	calls  int
}

func (s *stubFieldExtractor) ProfileFields(_ context.Context, _, _, _ string) (LLMFields, error) {
	s.calls++
	return s.fields, s.err
}

func personHit(link string) model.SearchHit {
	return model.SearchHit{
		Title:   "Jane Doe - CTO at Acme GmbH - LinkedIn",
		Link:    link,
		Snippet: "Stuttgart · CTO · Acme GmbH · Ca. 4540 Follower",
		Metatags: []model.Metatag{{
			FirstName:     "Jane",
			LastName:      "Doe",
			OGTitle:       "Jane Doe - CTO at Acme GmbH | LinkedIn",
			OGDescription: "Experience: Acme GmbH · Location: Stuttgart, Germany · 500+ connections",
		}},
	}
}

func TestProfiles_Heuristics(t *testing.T) {
	e := New(nil)
	seen := make(map[string]struct{})

	profiles, stats := e.Profiles(context.Background(), []model.SearchHit{
		personHit("https://de.linkedin.com/in/jane-doe"),
	}, seen)

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", p.ProfileURL)
	assert.Equal(t, "CTO at Acme GmbH", p.CurrentPosition)
	assert.Equal(t, "4540", p.FollowerCount)
	assert.Equal(t, "500+", p.ConnectionCount)
	assert.Equal(t, 1, stats.Extracted)
	assert.Zero(t, stats.Failed)
}

func TestProfiles_CompanyFromTitleWithoutMetatags(t *testing.T) {
	e := New(nil)
	seen := make(map[string]struct{})

	// Title-only hit: name and employer both come off the headline.
	profiles, stats := e.Profiles(context.Background(), []model.SearchHit{{
		Title: "Jane Doe - Head of Sales at Daimler Buses - LinkedIn",
		Link:  "https://www.linkedin.com/in/jane-doe",
	}}, seen)

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "Head of Sales at Daimler Buses", p.CurrentPosition)
	assert.Equal(t, "Daimler Buses", p.Company)
	assert.Equal(t, 1, stats.Extracted)
}

func TestProfiles_SeenSetDeduplicates(t *testing.T) {
	e := New(nil)
	seen := make(map[string]struct{})

	// Same person under two URL spellings, across two calls.
	first, stats1 := e.Profiles(context.Background(), []model.SearchHit{
		personHit("https://linkedin.com/in/jane-doe"),
	}, seen)
	second, stats2 := e.Profiles(context.Background(), []model.SearchHit{
		personHit("https://www.linkedin.com/in/jane-doe/"),
	}, seen)

	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 1, stats1.Extracted)
	assert.Equal(t, 1, stats2.Duplicates)
}

func TestProfiles_InvalidURLCountsAsFailed(t *testing.T) {
	e := New(nil)
	seen := make(map[string]struct{})

	profiles, stats := e.Profiles(context.Background(), []model.SearchHit{
		{Title: "Acme GmbH - LinkedIn", Link: "https://linkedin.com/company/acme"},
	}, seen)

	assert.Empty(t, profiles)
	assert.Equal(t, 1, stats.Failed)
}

func TestProfiles_NoNameCountsAsFailed(t *testing.T) {
	e := New(nil)
	seen := make(map[string]struct{})

	profiles, stats := e.Profiles(context.Background(), []model.SearchHit{
		{Title: "", Link: "https://linkedin.com/in/somebody"},
	}, seen)

	assert.Empty(t, profiles)
	assert.Equal(t, 1, stats.Failed)
}

func TestProfile_LLMFieldsPreferred(t *testing.T) {
	stub := &stubFieldExtractor{fields: LLMFields{
		CurrentPosition: "Chief Technology Officer",
		Company:         "Acme Holding SE",
		Location:        "Munich, Germany",
		FollowerCount:   "1.2K",
		ConnectionCount: "500+",
	}}
	e := New(stub)
	seen := make(map[string]struct{})
	var stats Stats

	p := e.Profile(context.Background(), personHit("https://linkedin.com/in/jane-doe"), seen, &stats)
	require.NotNil(t, p)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "Chief Technology Officer", p.CurrentPosition)
	assert.Equal(t, "Acme Holding SE", p.Company)
	assert.Equal(t, "Munich, Germany", p.Location)
	assert.Equal(t, "1.2K", p.FollowerCount)
	assert.Equal(t, "500+", p.ConnectionCount)
}

func TestProfile_LLMFailureFallsBackToHeuristics(t *testing.T) {
	stub := &stubFieldExtractor{err: assert.AnError}
	e := New(stub)
	seen := make(map[string]struct{})
	var stats Stats

	p := e.Profile(context.Background(), personHit("https://linkedin.com/in/jane-doe"), seen, &stats)
	require.NotNil(t, p)
	assert.Equal(t, "Acme GmbH", p.Company)
	assert.Equal(t, "Stuttgart, Germany", p.Location)
	assert.Equal(t, "4540", p.FollowerCount)
	assert.Equal(t, 1, stats.Extracted)
}

func TestSanitizeLLMFields(t *testing.T) {
	got := sanitizeLLMFields(LLMFields{
		CurrentPosition: "  CTO  ",
		Company:         "null",
		Location:        "N/A",
		FollowerCount:   "1K",
		ConnectionCount: "x",
	})
	assert.Equal(t, "CTO", got.CurrentPosition)
	assert.Empty(t, got.Company)
	assert.Empty(t, got.Location)
	assert.Equal(t, "1K", got.FollowerCount)
	assert.Empty(t, got.ConnectionCount)
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose wrapped", `Here you go: {"a": 1} as requested.`, `{"a": 1}`},
		{"plain object", `{"a": 1}`, `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.in))
		})
	}
}
