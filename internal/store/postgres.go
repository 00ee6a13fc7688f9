package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/db"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
)

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	domain TEXT UNIQUE,
	website TEXT,
	legal_form TEXT,
	industries_json JSONB,
	locations_de_json JSONB,
	multinational BOOLEAN,
	size_employees INTEGER,
	business_model_json JSONB,
	products_json JSONB,
	recent_news_json JSONB,
	address_text TEXT,
	phone_info TEXT,
	last_enriched_at TIMESTAMPTZ,
	source_name TEXT,
	source_query TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS people (
	id BIGSERIAL PRIMARY KEY,
	linkedin_profile TEXT NOT NULL UNIQUE,
	first_name TEXT,
	last_name TEXT,
	title_current TEXT,
	email TEXT,
	location_text TEXT,
	connections_linkedin INTEGER,
	followers_linkedin INTEGER,
	website_info TEXT,
	phone_info TEXT,
	info_raw TEXT,
	insights_text TEXT,
	lookup_date TEXT,
	source_name TEXT,
	source_query TEXT,
	company_id BIGINT REFERENCES companies(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_people_company ON people(company_id);

CREATE TABLE IF NOT EXISTS search_queries (
	id BIGSERIAL PRIMARY KEY,
	source TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	query_text TEXT NOT NULL,
	normalized_query TEXT NOT NULL,
	last_executed_at TIMESTAMPTZ,
	UNIQUE(source, entity_type, normalized_query)
);

CREATE TABLE IF NOT EXISTS outreach_messages (
	id BIGSERIAL PRIMARY KEY,
	linkedin_profile TEXT NOT NULL,
	channel TEXT NOT NULL,
	stage_no INTEGER NOT NULL,
	rendered_md TEXT,
	status TEXT NOT NULL DEFAULT 'scheduled',
	scheduled_at TIMESTAMPTZ,
	sent_at TIMESTAMPTZ,
	replied_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_outreach_profile ON outreach_messages(linkedin_profile);
`

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with its own connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the schema. Safe to run repeatedly.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Ping verifies connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return eris.Wrap(err, "postgres: ping")
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// UpsertPerson inserts or updates a person keyed on linkedin_profile. On
// conflict each fresh non-null column overwrites; nulls never erase stored
// values.
func (s *PostgresStore) UpsertPerson(ctx context.Context, p *model.PersonRecord) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO people (
			linkedin_profile, first_name, last_name, title_current, email,
			location_text, connections_linkedin, followers_linkedin,
			website_info, phone_info, info_raw, insights_text,
			lookup_date, source_name, source_query
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13, to_char(now(), 'YYYY-MM-DD')), $14, $15)
		ON CONFLICT (linkedin_profile) DO UPDATE SET
			first_name = COALESCE(EXCLUDED.first_name, people.first_name),
			last_name = COALESCE(EXCLUDED.last_name, people.last_name),
			title_current = COALESCE(EXCLUDED.title_current, people.title_current),
			email = COALESCE(EXCLUDED.email, people.email),
			location_text = COALESCE(EXCLUDED.location_text, people.location_text),
			connections_linkedin = COALESCE(EXCLUDED.connections_linkedin, people.connections_linkedin),
			followers_linkedin = COALESCE(EXCLUDED.followers_linkedin, people.followers_linkedin),
			website_info = COALESCE(EXCLUDED.website_info, people.website_info),
			phone_info = COALESCE(EXCLUDED.phone_info, people.phone_info),
			info_raw = COALESCE(EXCLUDED.info_raw, people.info_raw),
			insights_text = COALESCE(EXCLUDED.insights_text, people.insights_text),
			lookup_date = COALESCE(EXCLUDED.lookup_date, people.lookup_date),
			source_name = COALESCE(EXCLUDED.source_name, people.source_name),
			source_query = COALESCE(EXCLUDED.source_query, people.source_query)
		RETURNING id`,
		p.LinkedInProfile, nullStr(p.FirstName), nullStr(p.LastName),
		nullStr(p.TitleCurrent), nullStr(p.Email), nullStr(p.LocationText),
		nullIntPtr(p.ConnectionsLinkedIn), nullIntPtr(p.FollowersLinkedIn),
		nullStr(p.WebsiteInfo), nullStr(p.PhoneInfo), nullStr(p.InfoRaw),
		nullStr(p.InsightsText), nullStr(p.LookupDate),
		nullStr(p.SourceName), nullStr(p.SourceQuery),
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: upsert person %s", p.LinkedInProfile)
	}
	p.ID = id
	return id, nil
}

const postgresPersonSelect = `
SELECT p.id, p.linkedin_profile, p.first_name, p.last_name, p.title_current,
	p.email, p.location_text, p.connections_linkedin, p.followers_linkedin,
	p.website_info, p.phone_info, p.info_raw, p.insights_text, p.lookup_date,
	p.source_name, p.source_query, p.company_id, c.name, c.domain
FROM people p LEFT JOIN companies c ON c.id = p.company_id`

// GetPersonByProfile returns (nil, nil) when absent.
func (s *PostgresStore) GetPersonByProfile(ctx context.Context, profile string) (*model.PersonRecord, error) {
	row := s.pool.QueryRow(ctx, postgresPersonSelect+` WHERE p.linkedin_profile = $1`, profile)
	p, err := scanPersonRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get person %s", profile)
	}
	return p, nil
}

// ListPeople returns the most recently inserted people first.
func (s *PostgresStore) ListPeople(ctx context.Context, limit int) ([]model.PersonRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, postgresPersonSelect+` ORDER BY p.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list people")
	}
	defer rows.Close()

	var people []model.PersonRecord
	for rows.Next() {
		p, err := scanPersonRow(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan person")
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

// LinkPersonToCompany points a person row at a company row. Idempotent.
func (s *PostgresStore) LinkPersonToCompany(ctx context.Context, personID, companyID int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE people SET company_id = $1 WHERE id = $2`, companyID, personID)
	if err != nil {
		return eris.Wrapf(err, "postgres: link person %d to company %d", personID, companyID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: link person %d: no such person", personID)
	}
	return nil
}

// MergeDuplicatePeople collapses people whose stored URLs re-normalize to
// the same canonical profile URL, one transaction per group.
func (s *PostgresStore) MergeDuplicatePeople(ctx context.Context) (int, error) {
	rows, err := s.pool.Query(ctx, postgresPersonSelect+` ORDER BY p.id`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: merge: load people")
	}
	var people []model.PersonRecord
	for rows.Next() {
		p, err := scanPersonRow(rows)
		if err != nil {
			rows.Close()
			return 0, eris.Wrap(err, "postgres: merge: scan person")
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, eris.Wrap(err, "postgres: merge: load people")
	}
	rows.Close()

	merged := 0
	for canonical, group := range duplicateGroups(people) {
		if err := s.mergeGroup(ctx, canonical, group); err != nil {
			return merged, err
		}
		merged += len(group) - 1
		zap.L().Info("merged duplicate people",
			zap.String("profile", canonical), zap.Int("duplicates", len(group)-1))
	}
	return merged, nil
}

func (s *PostgresStore) mergeGroup(ctx context.Context, canonical string, group []model.PersonRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: merge: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	primary := group[0]
	for _, dup := range group[1:] {
		primary = mergePersonRecords(primary, dup)
	}

	for _, p := range group {
		if _, err := tx.Exec(ctx,
			`UPDATE outreach_messages SET linkedin_profile = $1 WHERE linkedin_profile = $2`,
			canonical, p.LinkedInProfile); err != nil {
			return eris.Wrapf(err, "postgres: merge: repoint outreach for %s", p.LinkedInProfile)
		}
	}
	for _, dup := range group[1:] {
		if _, err := tx.Exec(ctx, `DELETE FROM people WHERE id = $1`, dup.ID); err != nil {
			return eris.Wrapf(err, "postgres: merge: delete duplicate %d", dup.ID)
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE people SET
			linkedin_profile = $1, first_name = $2, last_name = $3, title_current = $4,
			email = $5, location_text = $6, connections_linkedin = $7, followers_linkedin = $8,
			website_info = $9, phone_info = $10, info_raw = $11, insights_text = $12,
			lookup_date = $13, source_name = $14, source_query = $15, company_id = $16
		WHERE id = $17`,
		canonical, nullStr(primary.FirstName), nullStr(primary.LastName),
		nullStr(primary.TitleCurrent), nullStr(primary.Email), nullStr(primary.LocationText),
		nullIntPtr(primary.ConnectionsLinkedIn), nullIntPtr(primary.FollowersLinkedIn),
		nullStr(primary.WebsiteInfo), nullStr(primary.PhoneInfo), nullStr(primary.InfoRaw),
		nullStr(primary.InsightsText), nullStr(primary.LookupDate),
		nullStr(primary.SourceName), nullStr(primary.SourceQuery),
		nullInt64Ptr(primary.CompanyID), primary.ID,
	); err != nil {
		return eris.Wrapf(err, "postgres: merge: update primary %d", primary.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: merge: commit")
	}
	return nil
}

// UpsertCompany inserts or updates a company keyed on domain; drafts with
// no domain insert a provisional name-only row each time.
func (s *PostgresStore) UpsertCompany(ctx context.Context, d *model.CompanyDraft) (int64, error) {
	name := SafeCompanyName(d)
	if d.Domain != "" {
		var id int64
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM companies WHERE domain = $1`, d.Domain).Scan(&id)
		switch {
		case err == nil:
			_, err = s.pool.Exec(ctx, `
				UPDATE companies SET
					name = COALESCE($1, name),
					website = COALESCE($2, website),
					address_text = COALESCE($3, address_text),
					phone_info = COALESCE($4, phone_info)
				WHERE id = $5`,
				name, nullStr(d.Website), nullStr(d.Address), nullStr(d.Phone), id)
			if err != nil {
				return 0, eris.Wrapf(err, "postgres: update company %s", d.Domain)
			}
			return id, nil
		case errors.Is(err, pgx.ErrNoRows):
			err = s.pool.QueryRow(ctx, `
				INSERT INTO companies (name, domain, website, address_text, phone_info, source_name, source_query)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
				name, d.Domain, nullStr(d.Website), nullStr(d.Address), nullStr(d.Phone),
				nullStr(d.SourceName), nullStr(d.SourceQuery)).Scan(&id)
			if err != nil {
				return 0, eris.Wrapf(err, "postgres: insert company %s", d.Domain)
			}
			return id, nil
		default:
			return 0, eris.Wrapf(err, "postgres: select company %s", d.Domain)
		}
	}

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO companies (name, address_text, phone_info, source_name, source_query)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, nullStr(d.Address), nullStr(d.Phone),
		nullStr(d.SourceName), nullStr(d.SourceQuery)).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: insert company %s", name)
	}
	return id, nil
}

const postgresCompanySelect = `
SELECT id, name, domain, website, legal_form, industries_json,
	locations_de_json, multinational, size_employees, business_model_json,
	products_json, recent_news_json, address_text, phone_info,
	last_enriched_at, source_name, source_query
FROM companies`

// GetCompanyByDomain returns (nil, nil) when no company owns the domain.
func (s *PostgresStore) GetCompanyByDomain(ctx context.Context, domain string) (*model.CompanyRecord, error) {
	row := s.pool.QueryRow(ctx, postgresCompanySelect+` WHERE domain = $1`, domain)
	c, err := scanPostgresCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get company %s", domain)
	}
	return c, nil
}

// ListCompanies returns companies ordered by name.
func (s *PostgresStore) ListCompanies(ctx context.Context, limit int) ([]model.CompanyRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, postgresCompanySelect+` ORDER BY name LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []model.CompanyRecord
	for rows.Next() {
		c, err := scanPostgresCompany(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// PendingEnrichment lists companies never enriched, or enriched without
// industries or headcount, ordered by name.
func (s *PostgresStore) PendingEnrichment(ctx context.Context, limit int) ([]model.PendingCompany, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, domain FROM companies
		WHERE last_enriched_at IS NULL
			OR (industries_json IS NULL OR jsonb_array_length(COALESCE(industries_json, '[]'::jsonb)) = 0)
			OR size_employees IS NULL
		ORDER BY name LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: pending enrichment")
	}
	defer rows.Close()

	var pending []model.PendingCompany
	for rows.Next() {
		var p model.PendingCompany
		var domain sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &domain); err != nil {
			return nil, eris.Wrap(err, "postgres: scan pending company")
		}
		p.Domain = domain.String
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// ApplyEnrichment writes the provided fields and stamps last_enriched_at.
// A domain already owned by another row is dropped from the update instead
// of failing the write.
func (s *PostgresStore) ApplyEnrichment(ctx context.Context, companyID int64, upd EnrichmentUpdate) error {
	if upd.Domain != "" {
		var other int64
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM companies WHERE domain = $1 AND id <> $2`,
			upd.Domain, companyID).Scan(&other)
		switch {
		case err == nil:
			zap.L().Warn("enrichment domain already taken, dropping field",
				zap.Int64("company_id", companyID),
				zap.String("domain", upd.Domain),
				zap.Int64("owner_id", other))
			upd.Domain = ""
		case !errors.Is(err, pgx.ErrNoRows):
			return eris.Wrapf(err, "postgres: check domain %s", upd.Domain)
		}
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.LegalForm != "" {
		add("legal_form", upd.LegalForm)
	}
	if upd.Domain != "" {
		add("domain", upd.Domain)
	}
	if upd.Website != "" {
		add("website", upd.Website)
	}
	if upd.Multinational != nil {
		add("multinational", *upd.Multinational)
	}
	if upd.SizeEmployees != nil {
		add("size_employees", *upd.SizeEmployees)
	}
	for _, col := range []struct {
		name   string
		values []string
	}{
		{"industries_json", upd.Industries},
		{"locations_de_json", upd.LocationsDE},
		{"business_model_json", upd.BusinessModel},
		{"products_json", upd.Products},
		{"recent_news_json", upd.RecentNews},
	} {
		if col.values == nil {
			continue
		}
		text, err := jsonList(col.values)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal %s", col.name)
		}
		add(col.name, text)
	}
	sets = append(sets, "last_enriched_at = now()")
	args = append(args, companyID)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("UPDATE companies SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return eris.Wrapf(err, "postgres: apply enrichment %d", companyID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: apply enrichment %d: no such company", companyID)
	}
	return nil
}

// FindOrCreateQuery records a search query sighting and returns its row id.
func (s *PostgresStore) FindOrCreateQuery(ctx context.Context, source, entityType, queryText string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO search_queries (source, entity_type, query_text, normalized_query, last_executed_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (source, entity_type, normalized_query) DO UPDATE SET
			last_executed_at = now()
		RETURNING id`,
		source, entityType, queryText, normalize.QueryText(queryText)).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: find or create query %q", queryText)
	}
	return id, nil
}

// ScheduleOutreach inserts a scheduled message. An empty ScheduledAt means
// due immediately.
func (s *PostgresStore) ScheduleOutreach(ctx context.Context, m *model.OutreachMessage) (int64, error) {
	var scheduledAt any
	if m.ScheduledAt != "" {
		t, err := time.Parse(timeLayout, m.ScheduledAt)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: parse scheduled_at %q", m.ScheduledAt)
		}
		scheduledAt = t.UTC()
	}

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO outreach_messages (linkedin_profile, channel, stage_no, rendered_md, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id`,
		m.LinkedInProfile, m.Channel, m.StageNo, nullStr(m.RenderedMD),
		model.OutreachStatusScheduled, scheduledAt).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: schedule outreach %s", m.LinkedInProfile)
	}
	m.ID = id
	m.Status = model.OutreachStatusScheduled
	return id, nil
}

// MarkOutreachSent stamps a message as sent.
func (s *PostgresStore) MarkOutreachSent(ctx context.Context, id int64) error {
	return s.markOutreach(ctx, id,
		`UPDATE outreach_messages SET status = $1, sent_at = now() WHERE id = $2`,
		model.OutreachStatusSent)
}

// MarkOutreachReplied stamps a message as replied.
func (s *PostgresStore) MarkOutreachReplied(ctx context.Context, id int64) error {
	return s.markOutreach(ctx, id,
		`UPDATE outreach_messages SET status = $1, replied_at = now() WHERE id = $2`,
		model.OutreachStatusReplied)
}

func (s *PostgresStore) markOutreach(ctx context.Context, id int64, query, status string) error {
	tag, err := s.pool.Exec(ctx, query, status, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: mark outreach %d %s", id, status)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: mark outreach %d: no such message", id)
	}
	return nil
}

const postgresOutreachSelect = `
SELECT id, linkedin_profile, channel, stage_no, rendered_md, status,
	scheduled_at, sent_at, replied_at
FROM outreach_messages`

// DueOutreach returns scheduled messages due at or before now.
func (s *PostgresStore) DueOutreach(ctx context.Context, now time.Time) ([]model.OutreachMessage, error) {
	rows, err := s.pool.Query(ctx,
		postgresOutreachSelect+` WHERE status = $1 AND scheduled_at <= $2 ORDER BY scheduled_at`,
		model.OutreachStatusScheduled, now.UTC())
	if err != nil {
		return nil, eris.Wrap(err, "postgres: due outreach")
	}
	defer rows.Close()
	return collectPostgresOutreach(rows)
}

// ListOutreach returns all messages for a profile in stage order.
func (s *PostgresStore) ListOutreach(ctx context.Context, profile string) ([]model.OutreachMessage, error) {
	rows, err := s.pool.Query(ctx,
		postgresOutreachSelect+` WHERE linkedin_profile = $1 ORDER BY stage_no, id`, profile)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list outreach %s", profile)
	}
	defer rows.Close()
	return collectPostgresOutreach(rows)
}

func collectPostgresOutreach(rows pgx.Rows) ([]model.OutreachMessage, error) {
	var messages []model.OutreachMessage
	for rows.Next() {
		var m model.OutreachMessage
		var rendered sql.NullString
		var scheduled, sent, replied sql.NullTime
		if err := rows.Scan(&m.ID, &m.LinkedInProfile, &m.Channel, &m.StageNo,
			&rendered, &m.Status, &scheduled, &sent, &replied); err != nil {
			return nil, eris.Wrap(err, "postgres: scan outreach")
		}
		m.RenderedMD = rendered.String
		m.ScheduledAt = formatNullTime(scheduled)
		m.SentAt = formatNullTime(sent)
		m.RepliedAt = formatNullTime(replied)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func scanPostgresCompany(row rowScanner) (*model.CompanyRecord, error) {
	var c model.CompanyRecord
	var domain, website, legalForm, address, phone, srcName, srcQuery sql.NullString
	var industries, locations, businessModel, products, news []byte
	var multinational sql.NullBool
	var size sql.NullInt64
	var enrichedAt sql.NullTime

	err := row.Scan(&c.ID, &c.Name, &domain, &website, &legalForm,
		&industries, &locations, &multinational, &size,
		&businessModel, &products, &news, &address, &phone,
		&enrichedAt, &srcName, &srcQuery)
	if err != nil {
		return nil, err
	}

	c.Domain = domain.String
	c.Website = website.String
	c.LegalForm = legalForm.String
	c.AddressText = address.String
	c.PhoneInfo = phone.String
	c.SourceName = srcName.String
	c.SourceQuery = srcQuery.String
	if multinational.Valid {
		b := multinational.Bool
		c.Multinational = &b
	}
	if size.Valid {
		n := int(size.Int64)
		c.SizeEmployees = &n
	}
	if enrichedAt.Valid {
		t := enrichedAt.Time
		c.LastEnrichedAt = &t
	}
	for _, col := range []struct {
		raw  []byte
		dest *[]string
	}{
		{industries, &c.Industries},
		{locations, &c.LocationsDE},
		{businessModel, &c.BusinessModel},
		{products, &c.Products},
		{news, &c.RecentNews},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, eris.Wrap(err, "postgres: decode json column")
		}
	}
	return &c, nil
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(timeLayout)
}
