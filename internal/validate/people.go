package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PersonStats counts validation outcomes for one batch.
type PersonStats struct {
	Total   int
	Valid   int
	Invalid int
	Errors  []string
}

// ProfileURLOK reports whether the URL is an http(s) LinkedIn /in/ link.
func ProfileURLOK(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") &&
		strings.Contains(strings.ToLower(u.Host), "linkedin.com") &&
		strings.Contains(u.Path, "/in/")
}

// NameOK reports whether the name looks like a person name rather than a
// URL or handle.
func NameOK(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 200 {
		return false
	}
	for _, prefix := range []string{"http", "www", "@"} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// Person returns the validation errors for one draft profile. An empty
// slice means the profile is persistable.
func Person(p model.PersonProfile) []string {
	var errs []string
	if p.ProfileURL == "" {
		errs = append(errs, "missing required field: profile_url")
	} else if !ProfileURLOK(p.ProfileURL) {
		errs = append(errs, fmt.Sprintf("invalid profile url: %s", p.ProfileURL))
	}
	if p.Name == "" {
		errs = append(errs, "missing required field: name")
	} else if !NameOK(p.Name) {
		errs = append(errs, fmt.Sprintf("invalid name: %s", p.Name))
	}
	return errs
}

// personWarnings flags oversized optional fields. Warnings never reject a
// profile, they only get logged.
func personWarnings(p model.PersonProfile) []string {
	var warns []string
	check := func(field, value string, limit int) {
		if len(value) > limit {
			warns = append(warns, fmt.Sprintf("%s too long: %d characters", field, len(value)))
		}
	}
	check("current_position", p.CurrentPosition, 200)
	check("company", p.Company, 200)
	check("location", p.Location, 200)
	check("summary", p.Summary, 2000)

	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		warns = append(warns, fmt.Sprintf("malformed email: %s", p.Email))
	}
	if p.Website != "" && !strings.Contains(p.Website, "://") {
		warns = append(warns, fmt.Sprintf("website missing scheme: %s", p.Website))
	}
	if p.Phone != "" && digitCount(p.Phone) < 7 {
		warns = append(warns, fmt.Sprintf("phone has too few digits: %s", p.Phone))
	}
	if p.ExperienceYears != nil && (*p.ExperienceYears < 0 || *p.ExperienceYears > 60) {
		warns = append(warns, fmt.Sprintf("experience years out of range: %d", *p.ExperienceYears))
	}
	return warns
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// CleanPerson trims string fields and upgrades the profile URL to https.
func CleanPerson(p model.PersonProfile) model.PersonProfile {
	p.Name = strings.TrimSpace(p.Name)
	p.CurrentPosition = strings.TrimSpace(p.CurrentPosition)
	p.Company = strings.TrimSpace(p.Company)
	p.Location = strings.TrimSpace(p.Location)
	p.Summary = strings.TrimSpace(p.Summary)
	if p.ProfileURL != "" && !strings.HasPrefix(p.ProfileURL, "https://") {
		p.ProfileURL = strings.Replace(p.ProfileURL, "http://", "https://", 1)
	}
	return p
}

// People validates and cleans a batch, keeping only persistable profiles.
func People(profiles []model.PersonProfile) ([]model.PersonProfile, PersonStats) {
	stats := PersonStats{Total: len(profiles)}
	valid := make([]model.PersonProfile, 0, len(profiles))

	for i, p := range profiles {
		if errs := Person(p); len(errs) > 0 {
			stats.Invalid++
			stats.Errors = append(stats.Errors, errs...)
			zap.L().Error("profile validation failed",
				zap.Int("index", i), zap.Strings("errors", errs))
			continue
		}
		if warns := personWarnings(p); len(warns) > 0 {
			zap.L().Warn("profile has warnings",
				zap.Int("index", i), zap.Strings("warnings", warns))
		}
		stats.Valid++
		valid = append(valid, CleanPerson(p))
	}

	zap.L().Info("validation complete",
		zap.Int("valid", stats.Valid), zap.Int("invalid", stats.Invalid))
	return valid, stats
}

// DedupePeople drops later profiles with a URL already in the batch.
func DedupePeople(profiles []model.PersonProfile) []model.PersonProfile {
	seen := make(map[string]struct{}, len(profiles))
	unique := make([]model.PersonProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.ProfileURL == "" {
			continue
		}
		if _, ok := seen[p.ProfileURL]; ok {
			continue
		}
		seen[p.ProfileURL] = struct{}{}
		unique = append(unique, p)
	}
	if removed := len(profiles) - len(unique); removed > 0 {
		zap.L().Info("removed duplicate profiles", zap.Int("removed", removed))
	}
	return unique
}
