package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/model"
)

type stubRepo struct {
	people    []model.PersonRecord
	companies []model.CompanyDraft
	links     map[int64]int64
	queries   []string
}

func (r *stubRepo) UpsertPerson(_ context.Context, p *model.PersonRecord) (int64, error) {
	r.people = append(r.people, *p)
	return int64(len(r.people)), nil
}

func (r *stubRepo) UpsertCompany(_ context.Context, d *model.CompanyDraft) (int64, error) {
	r.companies = append(r.companies, *d)
	return int64(100 + len(r.companies)), nil
}

func (r *stubRepo) LinkPersonToCompany(_ context.Context, personID, companyID int64) error {
	if r.links == nil {
		r.links = make(map[int64]int64)
	}
	r.links[personID] = companyID
	return nil
}

func (r *stubRepo) FindOrCreateQuery(_ context.Context, source, entityType, queryText string) (int64, error) {
	r.queries = append(r.queries, source+"|"+entityType+"|"+queryText)
	return 1, nil
}

func searchHit(name, slug, company string) model.SearchHit {
	return model.SearchHit{
		Title:   name + " - CTO at " + company + " - LinkedIn",
		Link:    "https://de.linkedin.com/in/" + slug,
		Snippet: "Stuttgart · CTO · " + company + " · Ca. 4540 Follower",
		Metatags: []model.Metatag{{
			OGTitle:       name + " - CTO at " + company + " | LinkedIn",
			OGDescription: "Experience: " + company + " · Location: Stuttgart, Germany · 500+ connections",
		}},
	}
}

func TestRun(t *testing.T) {
	repo := &stubRepo{}
	extractor := extract.New(nil)

	hits := []model.SearchHit{
		searchHit("Dr. Jane Doe", "jane-doe", "Acme GmbH"),
		searchHit("John Smith", "john-smith", "Acme GmbH"),
		{Title: "Acme GmbH - LinkedIn", Link: "https://linkedin.com/company/acme"},
	}

	stats, err := Run(context.Background(), repo, extractor, hits, "google_cse", "CTO Stuttgart")
	require.NoError(t, err)

	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, 3, stats.Hits)
	assert.Equal(t, 2, stats.Extracted)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.People)
	assert.Equal(t, 1, stats.Companies)

	require.Equal(t, []string{"google_cse|person|CTO Stuttgart"}, repo.queries)

	// Degree prefix moved out of the name and onto the title.
	require.Len(t, repo.people, 2)
	jane := repo.people[0]
	assert.Equal(t, "Jane", jane.FirstName)
	assert.Equal(t, "Doe", jane.LastName)
	assert.Equal(t, "CTO at Acme GmbH (Dr.)", jane.TitleCurrent)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", jane.LinkedInProfile)
	assert.Equal(t, "google_cse", jane.SourceName)
	require.NotNil(t, jane.FollowersLinkedIn)
	assert.Equal(t, 4540, *jane.FollowersLinkedIn)
	require.NotNil(t, jane.ConnectionsLinkedIn)
	assert.Equal(t, 500, *jane.ConnectionsLinkedIn)

	// One company for both people, both linked to it.
	require.Len(t, repo.companies, 1)
	assert.Equal(t, "Acme GmbH", repo.companies[0].Name)
	assert.Len(t, repo.links, 2)
	for _, companyID := range repo.links {
		assert.Equal(t, int64(101), companyID)
	}
}

func TestRun_SameProfileTwiceCountsDuplicate(t *testing.T) {
	repo := &stubRepo{}
	extractor := extract.New(nil)

	hits := []model.SearchHit{
		searchHit("Jane Doe", "jane-doe", "Acme GmbH"),
		searchHit("Jane Doe", "jane-doe/", "Acme GmbH"),
	}

	stats, err := Run(context.Background(), repo, extractor, hits, "google_cse", "CTO Stuttgart")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Extracted)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, stats.People)
}

func TestRun_EmptyHits(t *testing.T) {
	repo := &stubRepo{}
	extractor := extract.New(nil)

	stats, err := Run(context.Background(), repo, extractor, nil, "", "")
	require.NoError(t, err)
	assert.Zero(t, stats.People)
	assert.Empty(t, repo.queries)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		degree string
		first  string
		last   string
	}{
		{"plain", "Jane Doe", "", "Jane", "Doe"},
		{"doctor", "Dr. Max Mustermann", "Dr.", "Max", "Mustermann"},
		{"prof dr", "Prof. Dr. Anna Schmidt", "Prof. Dr.", "Anna", "Schmidt"},
		{"diplom engineer", "Dipl.-Ing. Hans Weber", "Dipl.-Ing.", "Hans", "Weber"},
		{"compound last name", "Jane van der Berg", "", "Jane", "van der Berg"},
		{"single token", "Jane", "", "Jane", ""},
		{"mba", "MBA Tom Fischer", "MBA", "Tom", "Fischer"},
		{"empty", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			degree, first, last := SplitName(tt.in)
			assert.Equal(t, tt.degree, degree)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
