package enrich

import (
	"regexp"
	"strings"
)

// Compound forms must match before the simple suffixes they contain, so
// "Maier GmbH & Co. KG" resolves to the compound, not "GmbH".
var compoundFormPatterns = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)\bgmbh\s*&\s*co\.?\s*kg\b`), "GmbH & Co. KG"},
	{regexp.MustCompile(`(?i)\bag\s*&\s*co\.?\s*kg\b`), "AG & Co. KG"},
	{regexp.MustCompile(`(?i)\bse\s*&\s*co\.?\s*kg\b`), "SE & Co. KG"},
	{regexp.MustCompile(`(?i)\bkgaa\b`), "KGaA"},
}

var simpleFormPatterns = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)\bgmbh\b`), "GmbH"},
	{regexp.MustCompile(`(?i)\bag\b`), "AG"},
	{regexp.MustCompile(`(?i)\bse\b`), "SE"},
	{regexp.MustCompile(`(?i)\bug\b`), "UG"},
	{regexp.MustCompile(`(?i)\bohg\b`), "OHG"},
	{regexp.MustCompile(`(?i)\bkg\b`), "KG"},
	{regexp.MustCompile(`(?i)\be\.k\.?`), "e.K."},
}

// Long-form phrases a provider may return instead of the short legal form.
var formPhrases = []struct {
	phrase    string
	canonical string
}{
	{"gesellschaft mit beschränkter haftung", "GmbH"},
	{"beschränkter haftung", "GmbH"},
	{"aktiengesellschaft", "AG"},
	{"unternehmergesellschaft", "UG"},
	{"kommanditgesellschaft auf aktien", "KGaA"},
	{"kommanditgesellschaft", "KG"},
	{"offene handelsgesellschaft", "OHG"},
	{"eingetragener kaufmann", "e.K."},
	{"eingetragene kauffrau", "e.K."},
}

var shortForms = map[string]string{
	"gmbh":          "GmbH",
	"ag":            "AG",
	"se":            "SE",
	"ug":            "UG",
	"kgaa":          "KGaA",
	"kg":            "KG",
	"ohg":           "OHG",
	"e.k.":          "e.K.",
	"ek":            "e.K.",
	"gmbh & co. kg": "GmbH & Co. KG",
	"ag & co. kg":   "AG & Co. KG",
	"se & co. kg":   "SE & Co. KG",
}

var (
	parenthetical  = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	multiWhitespace = regexp.MustCompile(`\s+`)
	nonFormChars   = regexp.MustCompile(`[^a-z.]`)
)

// DeriveLegalForm resolves a company's legal form. The company name is
// authoritative when it carries a recognizable suffix; otherwise the
// provider-supplied value is canonicalized.
func DeriveLegalForm(companyName, provided string) string {
	if form := formFromName(companyName); form != "" {
		return form
	}
	return canonicalizeForm(provided)
}

func formFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, p := range compoundFormPatterns {
		if p.re.MatchString(name) {
			return p.canonical
		}
	}
	for _, p := range simpleFormPatterns {
		if p.re.MatchString(name) {
			return p.canonical
		}
	}
	return ""
}

func canonicalizeForm(raw string) string {
	text := strings.Trim(strings.TrimSpace(raw), `"'`)
	text = strings.TrimSpace(parenthetical.ReplaceAllString(text, " "))
	if text == "" {
		return ""
	}
	low := strings.ToLower(text)

	for _, p := range formPhrases {
		if strings.Contains(low, p.phrase) {
			return p.canonical
		}
	}

	normalized := multiWhitespace.ReplaceAllString(strings.ReplaceAll(low, ",", " "), " ")
	normalized = strings.TrimSpace(strings.ReplaceAll(normalized, "& co kg", "& co. kg"))
	if short, ok := shortForms[normalized]; ok {
		return short
	}

	token := nonFormChars.ReplaceAllString(low, "")
	if short, ok := shortForms[token]; ok {
		return short
	}
	return text
}
