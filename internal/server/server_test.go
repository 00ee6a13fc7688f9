package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

type stubRepo struct {
	pingErr   error
	people    []model.PersonRecord
	companies []model.CompanyRecord
	pending   []model.PendingCompany
	outreach  []model.OutreachMessage
	lastLimit int
}

func (r *stubRepo) Ping(context.Context) error { return r.pingErr }

func (r *stubRepo) ListPeople(_ context.Context, limit int) ([]model.PersonRecord, error) {
	r.lastLimit = limit
	return r.people, nil
}

func (r *stubRepo) GetPersonByProfile(_ context.Context, profile string) (*model.PersonRecord, error) {
	for i := range r.people {
		if r.people[i].LinkedInProfile == profile {
			return &r.people[i], nil
		}
	}
	return nil, nil
}

func (r *stubRepo) ListCompanies(_ context.Context, limit int) ([]model.CompanyRecord, error) {
	r.lastLimit = limit
	return r.companies, nil
}

func (r *stubRepo) GetCompanyByDomain(_ context.Context, domain string) (*model.CompanyRecord, error) {
	for i := range r.companies {
		if r.companies[i].Domain == domain {
			return &r.companies[i], nil
		}
	}
	return nil, nil
}

func (r *stubRepo) PendingEnrichment(_ context.Context, limit int) ([]model.PendingCompany, error) {
	r.lastLimit = limit
	return r.pending, nil
}

func (r *stubRepo) DueOutreach(context.Context, time.Time) ([]model.OutreachMessage, error) {
	return r.outreach, nil
}

func (r *stubRepo) ListOutreach(_ context.Context, profile string) ([]model.OutreachMessage, error) {
	var out []model.OutreachMessage
	for _, m := range r.outreach {
		if m.LinkedInProfile == profile {
			out = append(out, m)
		}
	}
	return out, nil
}

func newTestServer(repo *stubRepo) *httptest.Server {
	return httptest.NewServer(New(repo).Router())
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubRepo{})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestHealth_StoreDown(t *testing.T) {
	srv := newTestServer(&stubRepo{pingErr: eris.New("connection refused")})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "store unreachable", body["error"])
}

func TestListPeople(t *testing.T) {
	repo := &stubRepo{people: []model.PersonRecord{
		{ID: 1, LinkedInProfile: "https://linkedin.com/in/jane-doe", FirstName: "Jane"},
		{ID: 2, LinkedInProfile: "https://linkedin.com/in/john-smith", FirstName: "John"},
	}}
	srv := newTestServer(repo)
	defer srv.Close()

	var body struct {
		People []model.PersonRecord `json:"people"`
		Count  int                  `json:"count"`
	}
	status := getJSON(t, srv.URL+"/api/people", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Jane", body.People[0].FirstName)
	assert.Equal(t, 50, repo.lastLimit)
}

func TestListPeople_CustomLimit(t *testing.T) {
	repo := &stubRepo{}
	srv := newTestServer(repo)
	defer srv.Close()

	var body map[string]any
	getJSON(t, srv.URL+"/api/people?limit=5", &body)
	assert.Equal(t, 5, repo.lastLimit)

	// Garbage limits fall back to the default.
	getJSON(t, srv.URL+"/api/people?limit=-1", &body)
	assert.Equal(t, 50, repo.lastLimit)
}

func TestGetPerson(t *testing.T) {
	repo := &stubRepo{people: []model.PersonRecord{
		{ID: 1, LinkedInProfile: "https://linkedin.com/in/jane-doe", FirstName: "Jane", LastName: "Doe"},
	}}
	srv := newTestServer(repo)
	defer srv.Close()

	var person model.PersonRecord
	status := getJSON(t, srv.URL+"/api/people/lookup?profile=https%3A%2F%2Flinkedin.com%2Fin%2Fjane-doe", &person)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Doe", person.LastName)
}

func TestGetPerson_MissingParam(t *testing.T) {
	srv := newTestServer(&stubRepo{})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/api/people/lookup", &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "profile is required", body["error"])
}

func TestGetPerson_NotFound(t *testing.T) {
	srv := newTestServer(&stubRepo{})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/api/people/lookup?profile=https%3A%2F%2Flinkedin.com%2Fin%2Fnobody", &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetCompany(t *testing.T) {
	repo := &stubRepo{companies: []model.CompanyRecord{
		{ID: 7, Name: "Acme GmbH", Domain: "acme.de", LegalForm: "GmbH"},
	}}
	srv := newTestServer(repo)
	defer srv.Close()

	var company model.CompanyRecord
	status := getJSON(t, srv.URL+"/api/companies/acme.de", &company)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Acme GmbH", company.Name)

	var body map[string]string
	status = getJSON(t, srv.URL+"/api/companies/other.de", &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPendingCompanies(t *testing.T) {
	repo := &stubRepo{pending: []model.PendingCompany{
		{ID: 1, Name: "Acme GmbH", Domain: "acme.de"},
	}}
	srv := newTestServer(repo)
	defer srv.Close()

	var body struct {
		Pending []model.PendingCompany `json:"pending"`
		Count   int                    `json:"count"`
	}
	status := getJSON(t, srv.URL+"/api/companies/pending", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "acme.de", body.Pending[0].Domain)
}

func TestOutreach(t *testing.T) {
	repo := &stubRepo{outreach: []model.OutreachMessage{
		{ID: 1, LinkedInProfile: "https://linkedin.com/in/jane-doe", Channel: "linkedin", Status: model.OutreachStatusScheduled},
		{ID: 2, LinkedInProfile: "https://linkedin.com/in/john-smith", Channel: "email", Status: model.OutreachStatusScheduled},
	}}
	srv := newTestServer(repo)
	defer srv.Close()

	var due struct {
		Messages []model.OutreachMessage `json:"messages"`
		Count    int                     `json:"count"`
	}
	status := getJSON(t, srv.URL+"/api/outreach/due", &due)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, due.Count)

	var byProfile struct {
		Messages []model.OutreachMessage `json:"messages"`
		Count    int                     `json:"count"`
	}
	status = getJSON(t, srv.URL+"/api/outreach?profile=https%3A%2F%2Flinkedin.com%2Fin%2Fjane-doe", &byProfile)
	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, byProfile.Count)
	assert.Equal(t, "linkedin", byProfile.Messages[0].Channel)
}
