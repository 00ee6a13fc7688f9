package normalize

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ApexDomain reduces a URL or bare hostname to its registrable domain
// ("https://sub.example.co.uk/x" -> "example.co.uk"). Returns "" when no
// registrable domain can be derived.
func ApexDomain(urlOrDomain string) string {
	text := strings.ToLower(strings.TrimSpace(urlOrDomain))
	if text == "" {
		return ""
	}
	if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
		text = "http://" + text
	}
	u, err := url.Parse(text)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	apex, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname())
	if err != nil {
		return ""
	}
	return apex
}
