package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var (
	linkedinSuffix     = regexp.MustCompile(`(?i)\s*[-|]\s*LinkedIn.*$`)
	linkedinPipeSuffix = regexp.MustCompile(`(?i)\s*\|\s*LinkedIn.*$`)
	parenthetical      = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	dashSplit          = regexp.MustCompile(`[–—]|\s[-|]\s`)
	chunkSplit         = regexp.MustCompile(`[|·•]`)
)

// NameFromMetatags pulls the person's name out of page metatags. The
// profile:first_name / profile:last_name pair is authoritative; og:title is
// the fallback after stripping the "| LinkedIn" suffix and any headline.
func NameFromMetatags(metatags []model.Metatag) string {
	for _, tag := range metatags {
		first := strings.TrimSpace(tag.FirstName)
		last := strings.TrimSpace(tag.LastName)
		if first != "" && last != "" {
			return first + " " + last
		}
		ogTitle := strings.TrimSpace(tag.OGTitle)
		if ogTitle == "" {
			continue
		}
		name := linkedinPipeSuffix.ReplaceAllString(ogTitle, "")
		if idx := strings.Index(name, " - "); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if len(name) > 2 && len(name) < 200 {
			return name
		}
	}
	return ""
}

// NameFromTitle extracts the person's name from a search result title like
// "Jane Doe - LinkedIn" or "Jane Doe – Software Engineer ...".
func NameFromTitle(title string) string {
	if title == "" {
		return ""
	}
	name := linkedinSuffix.ReplaceAllString(title, "")
	name = parenthetical.ReplaceAllString(name, " ")
	name = strings.TrimSpace(dashSplit.Split(name, -1)[0])
	name = strings.Join(strings.Fields(name), " ")
	if len(name) > 2 && len(name) < 200 {
		return name
	}
	return ""
}

// HeadlineFromTitle returns the professional headline left over once the
// name prefix is removed from the title.
func HeadlineFromTitle(title, name string) string {
	if title == "" || name == "" {
		return ""
	}
	cleanTitle := linkedinSuffix.ReplaceAllString(title, "")
	if strings.Contains(cleanTitle, name) {
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name) + `\s*[–—\-|]\s*`)
		if err == nil {
			headline := strings.TrimSpace(pattern.ReplaceAllString(cleanTitle, ""))
			if len(headline) > 3 && len(headline) < 200 {
				return headline
			}
		}
	}
	for _, sep := range []string{"–", "—", "-", "|"} {
		if idx := strings.Index(cleanTitle, sep); idx >= 0 {
			headline := strings.TrimSpace(cleanTitle[idx+len(sep):])
			if len(headline) > 3 {
				return headline
			}
		}
	}
	return ""
}

var headlineCompanyPattern = regexp.MustCompile(`(?i)(?:\b(?:at|bei)|@)\s+([^·\n•|,–—]+)`)

// CompanyFromHeadline pulls the employer out of a headline like
// "Head of Sales at Daimler Buses" or "Leiter Vertrieb bei Acme".
func CompanyFromHeadline(headline string) string {
	m := headlineCompanyPattern.FindStringSubmatch(headline)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(trailingChunk.ReplaceAllString(m[1], ""))
	candidate = strings.TrimRight(candidate, ".")
	if len(candidate) > 2 && len(candidate) < 100 && !digitsOnly.MatchString(candidate) {
		return candidate
	}
	return ""
}

// MetatagInfo is what the og:* metadata yields for a profile page.
type MetatagInfo struct {
	CurrentPosition string
	Company         string
	Location        string
	Description     string
}

var companyIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Experience:\s*([^·\n•|]+)`),
	regexp.MustCompile(`(?i)Berufserfahrung:\s*([^·\n•|]+)`),
	regexp.MustCompile(`(?i)(?:Currently|Currently working|Working)\s+(?:at|for|with)\s+([^·\n•|.,]+)`),
	regexp.MustCompile(`(?i)(?:Engineer|Developer|Manager|Director|Analyst|Consultant|Scientist)\s+(?:at|@|bei)\s+([^·\n•|.,]+)`),
}

var metaLocationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Location:\s*([^·\n•|]+)`),
	regexp.MustCompile(`(?i)Based in\s+([^·\n•|.,]+)`),
	regexp.MustCompile(`(?i)Located in\s+([^·\n•|.,]+)`),
	regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*(?:Germany|Deutschland|UK|USA|Canada|France|Italy|Spain|Netherlands|Sweden|Norway|Denmark|Switzerland|Austria|Australia|Japan|Singapore))`),
}

var (
	trailingChunk = regexp.MustCompile(`\s*[·•,].*$`)
	digitsOnly    = regexp.MustCompile(`^[0-9+\s]+$`)
)

// ProfileInfoFromMetatags extracts position, company, and location from the
// og:title and og:description metatags.
func ProfileInfoFromMetatags(metatags []model.Metatag) MetatagInfo {
	var info MetatagInfo
	for _, tag := range metatags {
		ogTitle := strings.TrimSpace(tag.OGTitle)
		ogDescription := strings.TrimSpace(tag.OGDescription)

		if ogDescription != "" && info.Description == "" {
			info.Description = ogDescription
		}

		if ogTitle != "" && info.CurrentPosition == "" {
			titleClean := linkedinPipeSuffix.ReplaceAllString(ogTitle, "")
			for _, sep := range []string{"–", "—", "-", "|"} {
				if idx := strings.Index(titleClean, sep); idx >= 0 {
					positionPart := strings.TrimSpace(titleClean[idx+len(sep):])
					chunks := chunkSplit.Split(positionPart, -1)
					if len(chunks) > 0 && len(strings.TrimSpace(chunks[0])) > 3 {
						info.CurrentPosition = strings.TrimSpace(chunks[0])
					}
					break
				}
			}
		}

		if ogDescription != "" && info.Company == "" {
			info.Company = companyFromDescription(ogDescription)
		}

		if ogDescription != "" && info.Location == "" {
			for _, p := range metaLocationPatterns {
				if m := p.FindStringSubmatch(ogDescription); m != nil {
					loc := strings.TrimSpace(m[1])
					if len(loc) > 2 && len(loc) < 100 {
						info.Location = loc
						break
					}
				}
			}
		}
	}
	return info
}

func companyFromDescription(description string) string {
	for _, p := range companyIndicators {
		for _, m := range p.FindAllStringSubmatch(description, -1) {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) <= 2 || len(candidate) >= 100 {
				continue
			}
			lowered := strings.ToLower(candidate)
			if strings.HasPrefix(lowered, "the ") || strings.HasPrefix(lowered, "a ") || strings.HasPrefix(lowered, "an ") {
				continue
			}
			if digitsOnly.MatchString(candidate) {
				continue
			}
			candidate = strings.TrimSpace(trailingChunk.ReplaceAllString(candidate, ""))
			if len(candidate) > 2 {
				return candidate
			}
		}
	}
	return ""
}

var (
	followerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?[KMB]?)\s+followers?`),
		regexp.MustCompile(`(?i)Ca\.\s+(\d+(?:\.\d+)?[KMB]?)\s+Follower`),
	}
	connectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\+?)\s+connections?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?[KMB]?)\s+Kontakte`),
	}
)

// FollowerAndConnectionCounts scans the snippet and og:description for
// follower and connection shorthand ("1K followers", "500+ connections",
// plus the German "Follower"/"Kontakte" forms). Counts stay as shown.
func FollowerAndConnectionCounts(hit model.SearchHit) (follower, connection string) {
	for _, p := range followerPatterns {
		if m := p.FindStringSubmatch(hit.Snippet); m != nil {
			follower = m[1]
			break
		}
	}
	for _, tag := range hit.Metatags {
		if tag.OGDescription == "" {
			continue
		}
		for _, p := range connectionPatterns {
			if m := p.FindStringSubmatch(tag.OGDescription); m != nil {
				connection = m[1]
				break
			}
		}
		if connection != "" {
			break
		}
	}
	return follower, connection
}
