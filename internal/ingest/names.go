package ingest

import (
	"regexp"
	"strings"
)

// German academic and professional prefixes, longest match first so
// "Prof. Dr." never resolves to bare "Prof.".
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^prof\.?\s+dr\.?\s+`),
	regexp.MustCompile(`(?i)^dr\.-ing\.?\s+`),
	regexp.MustCompile(`(?i)^dipl\.-ing\.?\s+`),
	regexp.MustCompile(`(?i)^priv\.-doz\.?\s+`),
	regexp.MustCompile(`(?i)^prof\.?\s+`),
	regexp.MustCompile(`(?i)^pd\.?\s+`),
	regexp.MustCompile(`(?i)^dr\.?\s+`),
	regexp.MustCompile(`(?i)^mag\.?\s+`),
	regexp.MustCompile(`(?i)^ing\.?\s+`),
	regexp.MustCompile(`(?i)^mba\s+`),
	regexp.MustCompile(`(?i)^m\.sc\.?\s+`),
	regexp.MustCompile(`(?i)^b\.sc\.?\s+`),
}

// SplitName separates a display name into degree prefix, first name and
// last name. The degree keeps its original spelling without the trailing
// space; the last name absorbs every token after the first.
func SplitName(full string) (degree, first, last string) {
	text := strings.TrimSpace(full)
	if text == "" {
		return "", "", ""
	}

	for _, pat := range degreePatterns {
		if loc := pat.FindStringIndex(text); loc != nil {
			degree = strings.TrimSpace(text[:loc[1]])
			text = strings.TrimSpace(text[loc[1]:])
			break
		}
	}

	parts := strings.Fields(text)
	switch len(parts) {
	case 0:
	case 1:
		first = parts[0]
	default:
		first = parts[0]
		last = strings.Join(parts[1:], " ")
	}
	return degree, first, last
}
