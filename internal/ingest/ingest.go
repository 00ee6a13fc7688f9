// Package ingest runs the search-hit ingestion pipeline: extract draft
// profiles, validate and deduplicate them, then persist people and their
// companies with query provenance.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
	"github.com/sells-group/leadgen-cli/internal/validate"
)

// Repository is the slice of the store the pipeline writes through.
type Repository interface {
	UpsertPerson(ctx context.Context, p *model.PersonRecord) (int64, error)
	UpsertCompany(ctx context.Context, d *model.CompanyDraft) (int64, error)
	LinkPersonToCompany(ctx context.Context, personID, companyID int64) error
	FindOrCreateQuery(ctx context.Context, source, entityType, queryText string) (int64, error)
}

// Stats reports one ingestion run.
type Stats struct {
	RunID           string
	Hits            int
	Extracted       int
	Failed          int
	Duplicates      int
	Valid           int
	Invalid         int
	People          int
	Companies       int
	ReviewCompanies int
}

// Run ingests a batch of search hits under one run id. The seen set is
// scoped to the run; cross-run duplicates are handled by the person upsert
// key and the merge command.
func Run(ctx context.Context, repo Repository, extractor *extract.Extractor, hits []model.SearchHit, source, query string) (Stats, error) {
	stats := Stats{RunID: uuid.NewString(), Hits: len(hits)}
	logger := zap.L().With(zap.String("run_id", stats.RunID))
	logger.Info("ingestion started",
		zap.Int("hits", len(hits)), zap.String("source", source), zap.String("query", query))

	if source != "" && query != "" {
		if _, err := repo.FindOrCreateQuery(ctx, source, "person", query); err != nil {
			return stats, eris.Wrap(err, "ingest: record search query")
		}
	}

	seen := make(map[string]struct{})
	profiles, extractStats := extractor.Profiles(ctx, hits, seen)
	stats.Extracted = extractStats.Extracted
	stats.Failed = extractStats.Failed
	stats.Duplicates = extractStats.Duplicates
	for i := range profiles {
		profiles[i].SourceName = source
		profiles[i].SourceQuery = query
	}

	valid, personStats := validate.People(profiles)
	stats.Valid = personStats.Valid
	stats.Invalid = personStats.Invalid
	valid = validate.DedupePeople(valid)

	drafts := companyDrafts(valid)
	unique, review := validate.DedupeCompanies(validate.Companies(drafts))
	stats.ReviewCompanies = len(review)
	for _, r := range review {
		logger.Warn("company needs manual review", zap.String("name", r.Name))
	}

	companyIDs := make(map[string]int64, len(unique))
	for i := range unique {
		id, err := repo.UpsertCompany(ctx, &unique[i])
		if err != nil {
			return stats, err
		}
		companyIDs[draftKey(unique[i])] = id
		stats.Companies++
	}

	for _, p := range valid {
		record := mapPerson(p)
		personID, err := repo.UpsertPerson(ctx, record)
		if err != nil {
			return stats, err
		}
		if companyID, ok := companyIDs[profileCompanyKey(p)]; ok {
			if err := repo.LinkPersonToCompany(ctx, personID, companyID); err != nil {
				return stats, err
			}
		}
		stats.People++
	}

	logger.Info("ingestion finished",
		zap.Int("people", stats.People),
		zap.Int("companies", stats.Companies),
		zap.Int("failed", stats.Failed),
		zap.Int("duplicates", stats.Duplicates))
	return stats, nil
}

// mapPerson converts a validated draft profile into a stored person row.
func mapPerson(p model.PersonProfile) *model.PersonRecord {
	degree, first, last := SplitName(p.Name)
	title := p.CurrentPosition
	if degree != "" {
		if title != "" {
			title = fmt.Sprintf("%s (%s)", title, degree)
		} else {
			title = fmt.Sprintf("(%s)", degree)
		}
	}

	website := p.CompanyWebsite
	if website == "" {
		website = p.Website
	}

	return &model.PersonRecord{
		LinkedInProfile:     p.ProfileURL,
		FirstName:           first,
		LastName:            last,
		TitleCurrent:        title,
		Email:               p.Email,
		LocationText:        p.Location,
		ConnectionsLinkedIn: extract.ParseConnections(p.ConnectionCount),
		FollowersLinkedIn:   extract.ParseCount(p.FollowerCount),
		WebsiteInfo:         website,
		PhoneInfo:           p.Phone,
		InfoRaw:             p.Summary,
		InsightsText:        strings.Join(p.Insights, "; "),
		SourceName:          p.SourceName,
		SourceQuery:         p.SourceQuery,
	}
}

// companyDrafts pulls one draft per profile that mentions a company.
func companyDrafts(profiles []model.PersonProfile) []model.CompanyDraft {
	var drafts []model.CompanyDraft
	for _, p := range profiles {
		d, ok := profileCompanyDraft(p)
		if !ok {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}

func profileCompanyDraft(p model.PersonProfile) (model.CompanyDraft, bool) {
	domain := p.CompanyDomain
	if domain == "" && p.CompanyWebsite != "" {
		domain = normalize.ApexDomain(p.CompanyWebsite)
	}
	if p.Company == "" && domain == "" {
		return model.CompanyDraft{}, false
	}
	return model.CompanyDraft{
		Name:        p.Company,
		Domain:      domain,
		Website:     p.CompanyWebsite,
		SourceName:  p.SourceName,
		SourceQuery: p.SourceQuery,
	}, true
}

// draftKey matches the dedupe identity in validate.DedupeCompanies: the
// domain when present, name+address otherwise.
func draftKey(d model.CompanyDraft) string {
	domain := strings.ToLower(strings.TrimSpace(d.Domain))
	if domain != "" {
		return "domain:" + domain
	}
	name := strings.ToLower(strings.TrimSpace(d.Name))
	addr := strings.ToLower(strings.TrimSpace(d.Address))
	return "name:" + name + "|" + addr
}

// profileCompanyKey is the draftKey of the profile's own company mention,
// used to look up the persisted company id.
func profileCompanyKey(p model.PersonProfile) string {
	d, ok := profileCompanyDraft(p)
	if !ok {
		return ""
	}
	return draftKey(validate.CleanCompany(d))
}
