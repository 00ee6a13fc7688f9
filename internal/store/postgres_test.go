package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestPostgresUpsertPerson(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	mock.ExpectQuery(`INSERT INTO people`).
		WithArgs("https://linkedin.com/in/jane-doe", "Jane", "Doe",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	p := &model.PersonRecord{
		LinkedInProfile: "https://linkedin.com/in/jane-doe",
		FirstName:       "Jane",
		LastName:        "Doe",
	}
	id, err := s.UpsertPerson(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetCompanyByDomain_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	mock.ExpectQuery(`SELECT id, name, domain`).
		WithArgs("acme.com").
		WillReturnError(pgx.ErrNoRows)

	c, err := s.GetCompanyByDomain(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetCompanyByDomain(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	enriched := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, name, domain`).
		WithArgs("acme.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "domain", "website", "legal_form", "industries_json",
			"locations_de_json", "multinational", "size_employees", "business_model_json",
			"products_json", "recent_news_json", "address_text", "phone_info",
			"last_enriched_at", "source_name", "source_query",
		}).AddRow(
			int64(3), "Acme GmbH", "acme.com", "https://acme.com", "GmbH",
			[]byte(`["Software"]`), []byte(`["Berlin"]`), true, int64(120),
			[]byte(nil), []byte(nil), []byte(nil), nil, nil,
			enriched, "google_cse", "cto berlin",
		))

	c, err := s.GetCompanyByDomain(context.Background(), "acme.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Acme GmbH", c.Name)
	assert.Equal(t, "GmbH", c.LegalForm)
	assert.Equal(t, []string{"Software"}, c.Industries)
	assert.Equal(t, []string{"Berlin"}, c.LocationsDE)
	require.NotNil(t, c.Multinational)
	assert.True(t, *c.Multinational)
	require.NotNil(t, c.SizeEmployees)
	assert.Equal(t, 120, *c.SizeEmployees)
	require.NotNil(t, c.LastEnrichedAt)
	assert.Equal(t, enriched, c.LastEnrichedAt.UTC())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLinkPersonToCompany_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	mock.ExpectExec(`UPDATE people SET company_id`).
		WithArgs(int64(7), int64(999)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = s.LinkPersonToCompany(context.Background(), 999, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such person")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresApplyEnrichment_DomainConflictDropsField(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	mock.ExpectQuery(`SELECT id FROM companies WHERE domain`).
		WithArgs("acme.com", int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	// The update must not touch the domain column.
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE companies SET legal_form = $1, last_enriched_at = now() WHERE id = $2`)).
		WithArgs("GmbH", int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = s.ApplyEnrichment(context.Background(), 2, EnrichmentUpdate{
		Domain:    "acme.com",
		LegalForm: "GmbH",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindOrCreateQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	mock.ExpectQuery(`INSERT INTO search_queries`).
		WithArgs("google_cse", "person", "CTO  Stuttgart", "cto stuttgart").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := s.FindOrCreateQuery(context.Background(), "google_cse", "person", "CTO  Stuttgart")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMarkOutreachSent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	mock.ExpectExec(`UPDATE outreach_messages SET status`).
		WithArgs(model.OutreachStatusSent, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.MarkOutreachSent(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
