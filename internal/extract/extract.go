package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
)

// Stats counts the outcomes of one extraction pass.
type Stats struct {
	Extracted  int
	Failed     int
	Duplicates int
}

// Extractor turns search hits into draft person profiles. The optional
// FieldExtractor fills position/company/location/counts when the regex
// heuristics cannot.
type Extractor struct {
	llm FieldExtractor
}

// New builds an Extractor. Pass nil to run heuristics only.
func New(llm FieldExtractor) *Extractor {
	return &Extractor{llm: llm}
}

// Profile extracts one draft profile from a search hit. The caller owns the
// seen set; a hit whose canonical URL is already present is reported as a
// duplicate and skipped. Returns nil when the hit yields no usable profile.
func (e *Extractor) Profile(ctx context.Context, hit model.SearchHit, seen map[string]struct{}, stats *Stats) *model.PersonProfile {
	snippet := StripBoilerplate(hit.Snippet)

	profileURL := normalize.ProfileURL(hit.Link)
	if profileURL == "" {
		zap.L().Warn("invalid profile url", zap.String("link", hit.Link))
		stats.Failed++
		return nil
	}

	if _, ok := seen[profileURL]; ok {
		zap.L().Debug("duplicate profile", zap.String("url", profileURL))
		stats.Duplicates++
		return nil
	}
	seen[profileURL] = struct{}{}

	name := NameFromMetatags(hit.Metatags)
	if name == "" {
		name = NameFromTitle(hit.Title)
	}
	if name == "" {
		zap.L().Warn("no name in title or metatags", zap.String("title", hit.Title))
		stats.Failed++
		return nil
	}

	headline := HeadlineFromTitle(hit.Title, name)
	metaInfo := ProfileInfoFromMetatags(hit.Metatags)

	summary := metaInfo.Description
	if summary == "" {
		summary = snippet
	}
	summary = NormalizeText(StripBoilerplate(summary))

	profile := &model.PersonProfile{
		Name:       name,
		ProfileURL: profileURL,
		Summary:    summary,
	}

	position := headline
	company := metaInfo.Company
	if company == "" {
		company = CompanyFromHeadline(headline)
	}
	location := metaInfo.Location

	if e.llm != nil {
		fields, err := e.llm.ProfileFields(ctx, name, hit.Title, summary+"\n\nSearch snippet: "+snippet)
		if err != nil {
			zap.L().Warn("llm field extraction failed, using heuristics",
				zap.String("name", name), zap.Error(err))
		} else {
			if fields.CurrentPosition != "" {
				position = fields.CurrentPosition
			}
			if fields.Company != "" {
				company = fields.Company
			}
			if fields.Location != "" {
				location = fields.Location
			}
			profile.FollowerCount = fields.FollowerCount
			profile.ConnectionCount = fields.ConnectionCount
		}
	}

	if profile.FollowerCount == "" || profile.ConnectionCount == "" {
		follower, connection := FollowerAndConnectionCounts(hit)
		if profile.FollowerCount == "" {
			profile.FollowerCount = follower
		}
		if profile.ConnectionCount == "" {
			profile.ConnectionCount = connection
		}
	}

	if len(position) > 3 {
		profile.CurrentPosition = position
	}
	if len(company) > 2 {
		profile.Company = company
	}
	if len(location) > 2 {
		profile.Location = location
	}

	fields := ParseSummary(summary)
	profile.Email = fields.Email
	profile.Website = fields.Website
	profile.Phone = fields.Phone
	profile.ExperienceYears = fields.ExperienceYears
	profile.Insights = CleanInsights(fields.Insights)

	stats.Extracted++
	zap.L().Debug("extracted profile", zap.String("name", name), zap.String("url", profileURL))
	return profile
}

// Profiles extracts every usable profile from a result page. The seen set
// spans calls so dedup works across pages and across queries in one run.
func (e *Extractor) Profiles(ctx context.Context, hits []model.SearchHit, seen map[string]struct{}) ([]model.PersonProfile, Stats) {
	var stats Stats
	profiles := make([]model.PersonProfile, 0, len(hits))
	for _, hit := range hits {
		if p := e.Profile(ctx, hit, seen, &stats); p != nil {
			profiles = append(profiles, *p)
		}
	}
	zap.L().Info("extraction complete",
		zap.Int("extracted", stats.Extracted),
		zap.Int("failed", stats.Failed),
		zap.Int("duplicates", stats.Duplicates),
	)
	return profiles, stats
}
