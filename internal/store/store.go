// Package store persists people, companies, search queries and outreach
// rows. Two implementations exist: SQLiteStore for the embedded default and
// PostgresStore for shared deployments. Both expose the same interface and
// the caller picks one at config time.
package store

import (
	"context"
	"time"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
)

// EnrichmentUpdate carries the fields an enrichment run wants to write.
// Nil slice and pointer fields are left untouched; LastEnrichedAt is always
// stamped, even for an empty update.
type EnrichmentUpdate struct {
	LegalForm     string
	Domain        string
	Website       string
	Industries    []string
	LocationsDE   []string
	Multinational *bool
	SizeEmployees *int
	BusinessModel []string
	Products      []string
	RecentNews    []string
}

// Store is the persistence contract shared by the SQLite and Postgres
// backends.
type Store interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()

	// People. Upserts key on linkedin_profile; a fresh non-null value
	// overwrites, a null one never erases what is already stored.
	UpsertPerson(ctx context.Context, p *model.PersonRecord) (int64, error)
	GetPersonByProfile(ctx context.Context, profile string) (*model.PersonRecord, error)
	ListPeople(ctx context.Context, limit int) ([]model.PersonRecord, error)
	LinkPersonToCompany(ctx context.Context, personID, companyID int64) error
	MergeDuplicatePeople(ctx context.Context) (int, error)

	// Companies. Domain is the identity key; drafts without one create
	// provisional name-only rows.
	UpsertCompany(ctx context.Context, d *model.CompanyDraft) (int64, error)
	GetCompanyByDomain(ctx context.Context, domain string) (*model.CompanyRecord, error)
	ListCompanies(ctx context.Context, limit int) ([]model.CompanyRecord, error)
	PendingEnrichment(ctx context.Context, limit int) ([]model.PendingCompany, error)
	ApplyEnrichment(ctx context.Context, companyID int64, upd EnrichmentUpdate) error

	// Search query provenance.
	FindOrCreateQuery(ctx context.Context, source, entityType, queryText string) (int64, error)

	// Outreach.
	ScheduleOutreach(ctx context.Context, m *model.OutreachMessage) (int64, error)
	MarkOutreachSent(ctx context.Context, id int64) error
	MarkOutreachReplied(ctx context.Context, id int64) error
	DueOutreach(ctx context.Context, now time.Time) ([]model.OutreachMessage, error)
	ListOutreach(ctx context.Context, profile string) ([]model.OutreachMessage, error)
}

// SafeCompanyName returns a display name for a draft that may carry only a
// domain, or nothing identifying at all.
func SafeCompanyName(d *model.CompanyDraft) string {
	if d.Name != "" {
		return d.Name
	}
	if d.Domain != "" {
		return d.Domain
	}
	return "Unknown Company"
}

// duplicateGroups buckets stored people whose profile URLs re-normalize to
// the same canonical URL. Rows whose URL no longer normalizes are skipped.
// Group members keep ascending id order; the first is the merge primary.
func duplicateGroups(people []model.PersonRecord) map[string][]model.PersonRecord {
	groups := make(map[string][]model.PersonRecord)
	for _, p := range people {
		canonical := normalize.ProfileURL(p.LinkedInProfile)
		if canonical == "" {
			continue
		}
		groups[canonical] = append(groups[canonical], p)
	}
	for key, group := range groups {
		if len(group) < 2 {
			delete(groups, key)
		}
	}
	return groups
}

// mergePersonRecords copies column values from a duplicate into the primary
// wherever the primary has none. The primary's existing values always win.
func mergePersonRecords(primary, dup model.PersonRecord) model.PersonRecord {
	if primary.FirstName == "" {
		primary.FirstName = dup.FirstName
	}
	if primary.LastName == "" {
		primary.LastName = dup.LastName
	}
	if primary.TitleCurrent == "" {
		primary.TitleCurrent = dup.TitleCurrent
	}
	if primary.Email == "" {
		primary.Email = dup.Email
	}
	if primary.LocationText == "" {
		primary.LocationText = dup.LocationText
	}
	if primary.ConnectionsLinkedIn == nil {
		primary.ConnectionsLinkedIn = dup.ConnectionsLinkedIn
	}
	if primary.FollowersLinkedIn == nil {
		primary.FollowersLinkedIn = dup.FollowersLinkedIn
	}
	if primary.WebsiteInfo == "" {
		primary.WebsiteInfo = dup.WebsiteInfo
	}
	if primary.PhoneInfo == "" {
		primary.PhoneInfo = dup.PhoneInfo
	}
	if primary.InfoRaw == "" {
		primary.InfoRaw = dup.InfoRaw
	}
	if primary.InsightsText == "" {
		primary.InsightsText = dup.InsightsText
	}
	if primary.LookupDate == "" {
		primary.LookupDate = dup.LookupDate
	}
	if primary.SourceName == "" {
		primary.SourceName = dup.SourceName
	}
	if primary.SourceQuery == "" {
		primary.SourceQuery = dup.SourceQuery
	}
	if primary.CompanyID == nil {
		primary.CompanyID = dup.CompanyID
	}
	return primary
}
