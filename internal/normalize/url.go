package normalize

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ProfileURL canonicalizes a LinkedIn profile link to
// "https://linkedin.com/in/{slug}". Locale hosts (de.linkedin.com) and
// trailing locale path segments (/de, /en) collapse onto the bare form so
// the same person always keys to one URL. Returns "" for anything that is
// not an /in/ profile link.
func ProfileURL(raw string) string {
	raw = strings.TrimSpace(norm.NFKC.String(raw))
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	host = strings.Replace(host, "www.", "", 1)
	host = strings.Replace(host, "de.linkedin.com", "linkedin.com", 1)
	if host == "" {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	if !strings.Contains(host, "linkedin.com") || !strings.HasPrefix(path, "/in/") {
		return ""
	}
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 || parts[0] != "in" {
		return ""
	}
	return "https://linkedin.com/in/" + canonicalSlug(parts[1])
}

// Zero-width runes survive NFKC and hide inside copied slugs.
var zeroWidth = strings.NewReplacer(
	"\u200b", "", // zero width space
	"\u200c", "", // zero width non-joiner
	"\u200d", "", // zero width joiner
	"\ufeff", "", // byte order mark
)

// canonicalSlug folds the decoded slug to its stored spelling. url.Parse has
// already percent-decoded the path segment.
func canonicalSlug(slug string) string {
	return zeroWidth.Replace(strings.ToLower(slug))
}
