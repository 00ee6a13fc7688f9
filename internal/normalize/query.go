package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// QueryText canonicalizes a search query for provenance dedup: NFKC fold,
// lowercase, trim, and collapse internal whitespace runs to single spaces.
func QueryText(query string) string {
	lowered := strings.ToLower(strings.TrimSpace(norm.NFKC.String(query)))
	return strings.Join(strings.Fields(lowered), " ")
}
