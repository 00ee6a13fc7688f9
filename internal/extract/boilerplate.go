package extract

import (
	"html"
	"regexp"
	"strings"
)

// LinkedIn injects "View Jane Doe's profile on LinkedIn, a professional
// community of 1 billion members." into snippets, with localized variants.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)View [^\n.!?]{1,200}?’s profile on LinkedIn[^.!?\n]*[.!?]`),
	regexp.MustCompile(`(?i)View [^\n.!?]{1,200}?'s profile on LinkedIn[^.!?\n]*[.!?]`),
	regexp.MustCompile(`(?i)View [^\n.!?]{1,200}? profile on LinkedIn, a professional community of [^.!?\n]*[.!?]`),
	regexp.MustCompile(`(?i)Sehen Sie sich das Profil von [^\n.!?]{1,200}? auf LinkedIn[^.!?\n]*[.!?]`),
}

var (
	multiSpace   = regexp.MustCompile(`[ \t\x{00A0}]{2,}`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
	bulletPrefix = regexp.MustCompile(`(?m)^[\s]*[-*•·–—›>\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}]+\s*`)
	doubleSpace  = regexp.MustCompile(` {2,}`)
)

// StripBoilerplate removes LinkedIn boilerplate sentences from text,
// preserving the rest and tidying whitespace.
func StripBoilerplate(text string) string {
	cleaned := text
	for _, p := range boilerplatePatterns {
		cleaned = p.ReplaceAllString(cleaned, " ")
	}
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = multiNewline.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// NormalizeText decodes HTML entities, strips list-bullet prefixes, and
// collapses runs of spaces.
func NormalizeText(text string) string {
	normalized := html.UnescapeString(text)
	normalized = strings.NewReplacer("\t", " ", "\u00a0", " ").Replace(normalized)
	normalized = bulletPrefix.ReplaceAllString(normalized, "")
	normalized = doubleSpace.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
