package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
)

// timeLayout matches what datetime('now') writes.
const timeLayout = "2006-01-02 15:04:05"

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	domain TEXT UNIQUE,
	website TEXT,
	legal_form TEXT,
	industries_json TEXT,
	locations_de_json TEXT,
	multinational INTEGER,
	size_employees INTEGER,
	business_model_json TEXT,
	products_json TEXT,
	recent_news_json TEXT,
	address_text TEXT,
	phone_info TEXT,
	last_enriched_at TEXT,
	source_name TEXT,
	source_query TEXT,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS people (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
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
	company_id INTEGER REFERENCES companies(id) ON DELETE SET NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_people_company ON people(company_id);

CREATE TABLE IF NOT EXISTS search_queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	query_text TEXT NOT NULL,
	normalized_query TEXT NOT NULL,
	last_executed_at TEXT,
	UNIQUE(source, entity_type, normalized_query)
);

CREATE TABLE IF NOT EXISTS outreach_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	linkedin_profile TEXT NOT NULL,
	channel TEXT NOT NULL,
	stage_no INTEGER NOT NULL,
	rendered_md TEXT,
	status TEXT NOT NULL DEFAULT 'scheduled',
	scheduled_at TEXT,
	sent_at TEXT,
	replied_at TEXT,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_outreach_profile ON outreach_messages(linkedin_profile);

CREATE VIEW IF NOT EXISTS v_people_with_company AS
SELECT p.*, c.name AS company_name, c.domain AS company_domain
FROM people p LEFT JOIN companies c ON c.id = p.company_id;
`

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path with WAL journaling and
// foreign keys enabled. Writes are serialized through a single connection.
func NewSQLite(path string) (*SQLiteStore, error) {
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: open %s", path)
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// Migrate creates the schema. Safe to run repeatedly.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// Ping verifies the database file is usable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return eris.Wrap(err, "sqlite: ping")
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("sqlite close failed", zap.Error(err))
	}
}

// UpsertPerson inserts or updates a person keyed on linkedin_profile. On
// conflict each fresh non-null column overwrites; nulls never erase stored
// values. Returns the row id either way.
func (s *SQLiteStore) UpsertPerson(ctx context.Context, p *model.PersonRecord) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO people (
			linkedin_profile, first_name, last_name, title_current, email,
			location_text, connections_linkedin, followers_linkedin,
			website_info, phone_info, info_raw, insights_text,
			lookup_date, source_name, source_query
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, datetime('now')), ?, ?)
		ON CONFLICT(linkedin_profile) DO UPDATE SET
			first_name = COALESCE(excluded.first_name, people.first_name),
			last_name = COALESCE(excluded.last_name, people.last_name),
			title_current = COALESCE(excluded.title_current, people.title_current),
			email = COALESCE(excluded.email, people.email),
			location_text = COALESCE(excluded.location_text, people.location_text),
			connections_linkedin = COALESCE(excluded.connections_linkedin, people.connections_linkedin),
			followers_linkedin = COALESCE(excluded.followers_linkedin, people.followers_linkedin),
			website_info = COALESCE(excluded.website_info, people.website_info),
			phone_info = COALESCE(excluded.phone_info, people.phone_info),
			info_raw = COALESCE(excluded.info_raw, people.info_raw),
			insights_text = COALESCE(excluded.insights_text, people.insights_text),
			lookup_date = COALESCE(excluded.lookup_date, people.lookup_date),
			source_name = COALESCE(excluded.source_name, people.source_name),
			source_query = COALESCE(excluded.source_query, people.source_query)
		RETURNING id`,
		p.LinkedInProfile, nullStr(p.FirstName), nullStr(p.LastName),
		nullStr(p.TitleCurrent), nullStr(p.Email), nullStr(p.LocationText),
		nullIntPtr(p.ConnectionsLinkedIn), nullIntPtr(p.FollowersLinkedIn),
		nullStr(p.WebsiteInfo), nullStr(p.PhoneInfo), nullStr(p.InfoRaw),
		nullStr(p.InsightsText), nullStr(p.LookupDate),
		nullStr(p.SourceName), nullStr(p.SourceQuery),
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: upsert person %s", p.LinkedInProfile)
	}
	p.ID = id
	return id, nil
}

const sqlitePersonSelect = `
SELECT p.id, p.linkedin_profile, p.first_name, p.last_name, p.title_current,
	p.email, p.location_text, p.connections_linkedin, p.followers_linkedin,
	p.website_info, p.phone_info, p.info_raw, p.insights_text, p.lookup_date,
	p.source_name, p.source_query, p.company_id, c.name, c.domain
FROM people p LEFT JOIN companies c ON c.id = p.company_id`

// GetPersonByProfile returns the stored person for a profile URL, joined
// with company name and domain. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetPersonByProfile(ctx context.Context, profile string) (*model.PersonRecord, error) {
	row := s.db.QueryRowContext(ctx, sqlitePersonSelect+` WHERE p.linkedin_profile = ?`, profile)
	p, err := scanPersonRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get person %s", profile)
	}
	return p, nil
}

// ListPeople returns the most recently inserted people first.
func (s *SQLiteStore) ListPeople(ctx context.Context, limit int) ([]model.PersonRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, sqlitePersonSelect+` ORDER BY p.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list people")
	}
	defer rows.Close()

	var people []model.PersonRecord
	for rows.Next() {
		p, err := scanPersonRow(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan person")
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

// LinkPersonToCompany points a person row at a company row. Idempotent.
func (s *SQLiteStore) LinkPersonToCompany(ctx context.Context, personID, companyID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET company_id = ? WHERE id = ?`, companyID, personID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: link person %d to company %d", personID, companyID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("sqlite: link person %d: no such person", personID)
	}
	return nil
}

// MergeDuplicatePeople collapses people whose stored URLs re-normalize to
// the same canonical profile URL. The lowest id survives, empty columns are
// filled from the duplicates, outreach rows are repointed and the duplicates
// deleted. Each group merges inside one transaction. Returns the number of
// rows merged away.
func (s *SQLiteStore) MergeDuplicatePeople(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx, sqlitePersonSelect+` ORDER BY p.id`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: merge: load people")
	}
	var people []model.PersonRecord
	for rows.Next() {
		p, err := scanPersonRow(rows)
		if err != nil {
			rows.Close()
			return 0, eris.Wrap(err, "sqlite: merge: scan person")
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, eris.Wrap(err, "sqlite: merge: load people")
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

func (s *SQLiteStore) mergeGroup(ctx context.Context, canonical string, group []model.PersonRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: merge: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	primary := group[0]
	for _, dup := range group[1:] {
		primary = mergePersonRecords(primary, dup)
	}

	for _, p := range group {
		if _, err := tx.ExecContext(ctx,
			`UPDATE outreach_messages SET linkedin_profile = ? WHERE linkedin_profile = ?`,
			canonical, p.LinkedInProfile); err != nil {
			return eris.Wrapf(err, "sqlite: merge: repoint outreach for %s", p.LinkedInProfile)
		}
	}
	for _, dup := range group[1:] {
		if _, err := tx.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, dup.ID); err != nil {
			return eris.Wrapf(err, "sqlite: merge: delete duplicate %d", dup.ID)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE people SET
			linkedin_profile = ?, first_name = ?, last_name = ?, title_current = ?,
			email = ?, location_text = ?, connections_linkedin = ?, followers_linkedin = ?,
			website_info = ?, phone_info = ?, info_raw = ?, insights_text = ?,
			lookup_date = ?, source_name = ?, source_query = ?, company_id = ?
		WHERE id = ?`,
		canonical, nullStr(primary.FirstName), nullStr(primary.LastName),
		nullStr(primary.TitleCurrent), nullStr(primary.Email), nullStr(primary.LocationText),
		nullIntPtr(primary.ConnectionsLinkedIn), nullIntPtr(primary.FollowersLinkedIn),
		nullStr(primary.WebsiteInfo), nullStr(primary.PhoneInfo), nullStr(primary.InfoRaw),
		nullStr(primary.InsightsText), nullStr(primary.LookupDate),
		nullStr(primary.SourceName), nullStr(primary.SourceQuery),
		nullInt64Ptr(primary.CompanyID), primary.ID,
	); err != nil {
		return eris.Wrapf(err, "sqlite: merge: update primary %d", primary.ID)
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: merge: commit")
	}
	return nil
}

// UpsertCompany inserts or updates a company. With a domain the domain is
// the key: an existing row is topped up field by field, otherwise a new row
// is inserted. Without a domain every call inserts a provisional name-only
// row; duplicates are allowed until enrichment resolves a domain.
func (s *SQLiteStore) UpsertCompany(ctx context.Context, d *model.CompanyDraft) (int64, error) {
	name := SafeCompanyName(d)
	if d.Domain != "" {
		var id int64
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM companies WHERE domain = ?`, d.Domain).Scan(&id)
		switch {
		case err == nil:
			_, err = s.db.ExecContext(ctx, `
				UPDATE companies SET
					name = COALESCE(?, name),
					website = COALESCE(?, website),
					address_text = COALESCE(?, address_text),
					phone_info = COALESCE(?, phone_info)
				WHERE id = ?`,
				name, nullStr(d.Website), nullStr(d.Address), nullStr(d.Phone), id)
			if err != nil {
				return 0, eris.Wrapf(err, "sqlite: update company %s", d.Domain)
			}
			return id, nil
		case errors.Is(err, sql.ErrNoRows):
			err = s.db.QueryRowContext(ctx, `
				INSERT INTO companies (name, domain, website, address_text, phone_info, source_name, source_query)
				VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
				name, d.Domain, nullStr(d.Website), nullStr(d.Address), nullStr(d.Phone),
				nullStr(d.SourceName), nullStr(d.SourceQuery)).Scan(&id)
			if err != nil {
				return 0, eris.Wrapf(err, "sqlite: insert company %s", d.Domain)
			}
			return id, nil
		default:
			return 0, eris.Wrapf(err, "sqlite: select company %s", d.Domain)
		}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO companies (name, address_text, phone_info, source_name, source_query)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		name, nullStr(d.Address), nullStr(d.Phone),
		nullStr(d.SourceName), nullStr(d.SourceQuery)).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: insert company %s", name)
	}
	return id, nil
}

const sqliteCompanySelect = `
SELECT id, name, domain, website, legal_form, industries_json,
	locations_de_json, multinational, size_employees, business_model_json,
	products_json, recent_news_json, address_text, phone_info,
	last_enriched_at, source_name, source_query
FROM companies`

// GetCompanyByDomain returns (nil, nil) when no company owns the domain.
func (s *SQLiteStore) GetCompanyByDomain(ctx context.Context, domain string) (*model.CompanyRecord, error) {
	row := s.db.QueryRowContext(ctx, sqliteCompanySelect+` WHERE domain = ?`, domain)
	c, err := scanSQLiteCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get company %s", domain)
	}
	return c, nil
}

// ListCompanies returns companies ordered by name.
func (s *SQLiteStore) ListCompanies(ctx context.Context, limit int) ([]model.CompanyRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, sqliteCompanySelect+` ORDER BY name LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var companies []model.CompanyRecord
	for rows.Next() {
		c, err := scanSQLiteCompany(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// PendingEnrichment lists companies never enriched, or enriched without
// industries or headcount, ordered by name.
func (s *SQLiteStore) PendingEnrichment(ctx context.Context, limit int) ([]model.PendingCompany, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, domain FROM companies
		WHERE last_enriched_at IS NULL
			OR (industries_json IS NULL OR json_array_length(COALESCE(industries_json, '[]')) = 0)
			OR size_employees IS NULL
		ORDER BY name LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: pending enrichment")
	}
	defer rows.Close()

	var pending []model.PendingCompany
	for rows.Next() {
		var p model.PendingCompany
		var domain sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &domain); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan pending company")
		}
		p.Domain = domain.String
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// ApplyEnrichment writes the provided fields and stamps last_enriched_at.
// A domain already owned by another row is dropped from the update (with a
// warning) instead of failing the whole write.
func (s *SQLiteStore) ApplyEnrichment(ctx context.Context, companyID int64, upd EnrichmentUpdate) error {
	if upd.Domain != "" {
		var other int64
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM companies WHERE domain = ? AND id <> ?`,
			upd.Domain, companyID).Scan(&other)
		switch {
		case err == nil:
			zap.L().Warn("enrichment domain already taken, dropping field",
				zap.Int64("company_id", companyID),
				zap.String("domain", upd.Domain),
				zap.Int64("owner_id", other))
			upd.Domain = ""
		case !errors.Is(err, sql.ErrNoRows):
			return eris.Wrapf(err, "sqlite: check domain %s", upd.Domain)
		}
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
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
		add("multinational", boolToInt(*upd.Multinational))
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
			return eris.Wrapf(err, "sqlite: marshal %s", col.name)
		}
		add(col.name, text)
	}
	sets = append(sets, "last_enriched_at = datetime('now')")
	args = append(args, companyID)

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE companies SET %s WHERE id = ?", strings.Join(sets, ", ")),
		args...)
	if err != nil {
		return eris.Wrapf(err, "sqlite: apply enrichment %d", companyID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("sqlite: apply enrichment %d: no such company", companyID)
	}
	return nil
}

// FindOrCreateQuery records a search query sighting and returns its row id.
// The normalized text is the identity; last_executed_at refreshes on every
// call.
func (s *SQLiteStore) FindOrCreateQuery(ctx context.Context, source, entityType, queryText string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO search_queries (source, entity_type, query_text, normalized_query, last_executed_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(source, entity_type, normalized_query) DO UPDATE SET
			last_executed_at = datetime('now')
		RETURNING id`,
		source, entityType, queryText, normalize.QueryText(queryText)).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: find or create query %q", queryText)
	}
	return id, nil
}

// ScheduleOutreach inserts a scheduled message. An empty ScheduledAt means
// due immediately.
func (s *SQLiteStore) ScheduleOutreach(ctx context.Context, m *model.OutreachMessage) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO outreach_messages (linkedin_profile, channel, stage_no, rendered_md, status, scheduled_at)
		VALUES (?, ?, ?, ?, ?, COALESCE(?, datetime('now')))
		RETURNING id`,
		m.LinkedInProfile, m.Channel, m.StageNo, nullStr(m.RenderedMD),
		model.OutreachStatusScheduled, nullStr(m.ScheduledAt)).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: schedule outreach %s", m.LinkedInProfile)
	}
	m.ID = id
	m.Status = model.OutreachStatusScheduled
	return id, nil
}

// MarkOutreachSent stamps a message as sent.
func (s *SQLiteStore) MarkOutreachSent(ctx context.Context, id int64) error {
	return s.markOutreach(ctx, id,
		`UPDATE outreach_messages SET status = ?, sent_at = datetime('now') WHERE id = ?`,
		model.OutreachStatusSent)
}

// MarkOutreachReplied stamps a message as replied.
func (s *SQLiteStore) MarkOutreachReplied(ctx context.Context, id int64) error {
	return s.markOutreach(ctx, id,
		`UPDATE outreach_messages SET status = ?, replied_at = datetime('now') WHERE id = ?`,
		model.OutreachStatusReplied)
}

func (s *SQLiteStore) markOutreach(ctx context.Context, id int64, query, status string) error {
	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark outreach %d %s", id, status)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("sqlite: mark outreach %d: no such message", id)
	}
	return nil
}

const sqliteOutreachSelect = `
SELECT id, linkedin_profile, channel, stage_no, rendered_md, status,
	scheduled_at, sent_at, replied_at
FROM outreach_messages`

// DueOutreach returns scheduled messages due at or before now.
func (s *SQLiteStore) DueOutreach(ctx context.Context, now time.Time) ([]model.OutreachMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		sqliteOutreachSelect+` WHERE status = ? AND scheduled_at <= ? ORDER BY scheduled_at`,
		model.OutreachStatusScheduled, now.UTC().Format(timeLayout))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: due outreach")
	}
	defer rows.Close()
	return collectSQLiteOutreach(rows)
}

// ListOutreach returns all messages for a profile in stage order.
func (s *SQLiteStore) ListOutreach(ctx context.Context, profile string) ([]model.OutreachMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		sqliteOutreachSelect+` WHERE linkedin_profile = ? ORDER BY stage_no, id`, profile)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list outreach %s", profile)
	}
	defer rows.Close()
	return collectSQLiteOutreach(rows)
}

func collectSQLiteOutreach(rows *sql.Rows) ([]model.OutreachMessage, error) {
	var messages []model.OutreachMessage
	for rows.Next() {
		var m model.OutreachMessage
		var rendered, scheduled, sent, replied sql.NullString
		if err := rows.Scan(&m.ID, &m.LinkedInProfile, &m.Channel, &m.StageNo,
			&rendered, &m.Status, &scheduled, &sent, &replied); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan outreach")
		}
		m.RenderedMD = rendered.String
		m.ScheduledAt = scheduled.String
		m.SentAt = sent.String
		m.RepliedAt = replied.String
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPersonRow(row rowScanner) (*model.PersonRecord, error) {
	var p model.PersonRecord
	var firstName, lastName, title, email, location sql.NullString
	var website, phone, infoRaw, insights, lookup, srcName, srcQuery sql.NullString
	var connections, followers sql.NullInt64
	var companyID sql.NullInt64
	var companyName, companyDomain sql.NullString

	err := row.Scan(&p.ID, &p.LinkedInProfile, &firstName, &lastName, &title,
		&email, &location, &connections, &followers, &website, &phone,
		&infoRaw, &insights, &lookup, &srcName, &srcQuery,
		&companyID, &companyName, &companyDomain)
	if err != nil {
		return nil, err
	}

	p.FirstName = firstName.String
	p.LastName = lastName.String
	p.TitleCurrent = title.String
	p.Email = email.String
	p.LocationText = location.String
	p.WebsiteInfo = website.String
	p.PhoneInfo = phone.String
	p.InfoRaw = infoRaw.String
	p.InsightsText = insights.String
	p.LookupDate = lookup.String
	p.SourceName = srcName.String
	p.SourceQuery = srcQuery.String
	p.CompanyName = companyName.String
	p.CompanyDomain = companyDomain.String
	if connections.Valid {
		n := int(connections.Int64)
		p.ConnectionsLinkedIn = &n
	}
	if followers.Valid {
		n := int(followers.Int64)
		p.FollowersLinkedIn = &n
	}
	if companyID.Valid {
		id := companyID.Int64
		p.CompanyID = &id
	}
	return &p, nil
}

func scanSQLiteCompany(row rowScanner) (*model.CompanyRecord, error) {
	var c model.CompanyRecord
	var domain, website, legalForm, address, phone, srcName, srcQuery sql.NullString
	var industries, locations, businessModel, products, news sql.NullString
	var multinational, size sql.NullInt64
	var enrichedAt sql.NullString

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
		b := multinational.Int64 != 0
		c.Multinational = &b
	}
	if size.Valid {
		n := int(size.Int64)
		c.SizeEmployees = &n
	}
	if enrichedAt.Valid {
		if t, err := time.Parse(timeLayout, enrichedAt.String); err == nil {
			c.LastEnrichedAt = &t
		}
	}
	for _, col := range []struct {
		raw  sql.NullString
		dest *[]string
	}{
		{industries, &c.Industries},
		{locations, &c.LocationsDE},
		{businessModel, &c.BusinessModel},
		{products, &c.Products},
		{news, &c.RecentNews},
	} {
		if !col.raw.Valid || col.raw.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw.String), col.dest); err != nil {
			return nil, eris.Wrap(err, "sqlite: decode json column")
		}
	}
	return &c, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIntPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt64Ptr(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func jsonList(values []string) (string, error) {
	// json.Marshal keeps non-ASCII characters literal, which is what the
	// stored JSON columns expect for German names.
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
