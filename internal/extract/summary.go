package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// SummaryFields holds the contact and experience signals parsed out of a
// profile summary.
type SummaryFields struct {
	Email           string
	Website         string
	Phone           string
	ExperienceYears *int
	Insights        []string
}

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	urlPattern    = regexp.MustCompile(`https?://[\w.-]+\.[A-Za-z]{2,}(?:/[\w\-./?%&=]*)?`)
	bareDomain    = regexp.MustCompile(`\b(?:[a-zA-Z0-9-]+\.)+[A-Za-z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`(?:(?:\+|00)\d{1,3}[\s-]?)?(?:\(?\d{2,4}\)?[\s-]?)?\d{3,4}[\s-]?\d{3,4}`)
	nonDigit      = regexp.MustCompile(`\D`)
	sentenceSplit = regexp.MustCompile(`(?:[.!?])\s+|\n+`)
	hasDigit      = regexp.MustCompile(`\d`)
	hasProperNoun = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b(?:\s+[A-Z][a-z]{2,})?`)
)

// Experience patterns run most-specific first; the bare "N years" form is a
// known-noisy last resort kept for recall.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*years?\s+of\s+experience`),
	regexp.MustCompile(`(?i)over\s+(\d{1,2})\s+years`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*\+\s*years`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*years`),
}

var excludedWebsiteDomains = []string{
	"linkedin.com", "twitter.com", "x.com", "facebook.com",
	"instagram.com", "youtube.com", "medium.com",
}

// ParseSummary pulls email, website, phone, years of experience, and up to
// five insight sentences out of free-form summary text.
func ParseSummary(summary string) SummaryFields {
	var out SummaryFields
	text := strings.TrimSpace(summary)
	if text == "" {
		return out
	}

	if m := emailPattern.FindString(text); m != "" {
		out.Email = m
	}

	out.Website = findWebsite(text)

	if m := phonePattern.FindString(text); m != "" {
		digits := nonDigit.ReplaceAllString(m, "")
		if len(digits) >= 7 {
			out.Phone = strings.TrimSpace(m)
		}
	}

	for _, p := range experiencePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				out.ExperienceYears = &years
				break
			}
		}
	}

	out.Insights = insightSentences(text, out)
	return out
}

func findWebsite(text string) string {
	for _, u := range urlPattern.FindAllString(text, -1) {
		if !containsAnyDomain(strings.ToLower(u), excludedWebsiteDomains) {
			return u
		}
	}
	excluded := append([]string{"wikipedia.org"}, excludedWebsiteDomains...)
	for _, bare := range bareDomain.FindAllString(text, -1) {
		if !containsAnyDomain(strings.ToLower(bare), excluded) {
			return "https://" + bare
		}
	}
	return ""
}

func containsAnyDomain(s string, domains []string) bool {
	for _, d := range domains {
		if strings.Contains(s, d) {
			return true
		}
	}
	return false
}

// insightSentences keeps sentences with signal (numbers or proper nouns)
// that do not repeat the contact fields already extracted, capped at five.
func insightSentences(text string, fields SummaryFields) []string {
	websiteBare := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(fields.Website, "https://"), "http://"))
	seen := make(map[string]struct{})
	var insights []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if fields.Email != "" && strings.Contains(s, fields.Email) {
			continue
		}
		if websiteBare != "" && strings.Contains(strings.ToLower(s), websiteBare) {
			continue
		}
		if fields.Phone != "" && strings.Contains(s, fields.Phone) {
			continue
		}
		if !hasDigit.MatchString(s) && !hasProperNoun.MatchString(s) {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		insights = append(insights, s)
		if len(insights) == 5 {
			break
		}
	}
	return insights
}

// CleanInsights normalizes insight sentences: boilerplate and bullets
// stripped, empties and duplicates dropped, order preserved, capped at five.
func CleanInsights(items []string) []string {
	seen := make(map[string]struct{})
	var cleaned []string
	for _, s := range items {
		txt := NormalizeText(StripBoilerplate(s))
		if len(txt) < 2 {
			continue
		}
		if _, ok := seen[txt]; ok {
			continue
		}
		seen[txt] = struct{}{}
		cleaned = append(cleaned, txt)
		if len(cleaned) == 5 {
			break
		}
	}
	return cleaned
}
