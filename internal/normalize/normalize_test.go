package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "https://linkedin.com/in/jane-doe", "https://linkedin.com/in/jane-doe"},
		{"www host", "https://www.linkedin.com/in/jane-doe", "https://linkedin.com/in/jane-doe"},
		{"locale host", "https://de.linkedin.com/in/jane-doe", "https://linkedin.com/in/jane-doe"},
		{"trailing slash", "https://linkedin.com/in/jane-doe/", "https://linkedin.com/in/jane-doe"},
		{"locale segment dropped", "https://linkedin.com/in/jane-doe/de", "https://linkedin.com/in/jane-doe"},
		{"query string dropped", "https://linkedin.com/in/jane-doe?trk=xyz", "https://linkedin.com/in/jane-doe"},
		{"uppercase host", "https://LinkedIn.com/in/jane-doe", "https://linkedin.com/in/jane-doe"},
		{"mixed case slug folded", "http://de.linkedin.com/in/John-Doe/", "https://linkedin.com/in/john-doe"},
		{"percent encoded slug decoded", "https://linkedin.com/in/j%C3%BCrgen-m%C3%BCller", "https://linkedin.com/in/jürgen-müller"},
		{"zero width rune stripped", "https://linkedin.com/in/jane\u200b-doe", "https://linkedin.com/in/jane-doe"},
		{"bare profile root rejected", "https://linkedin.com/in/", ""},
		{"company page rejected", "https://linkedin.com/company/acme", ""},
		{"pub page rejected", "https://linkedin.com/pub/jane-doe", ""},
		{"non linkedin rejected", "https://example.com/in/jane-doe", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"no host", "/in/jane-doe", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileURL(tt.in))
		})
	}
}

func TestProfileURL_Idempotent(t *testing.T) {
	inputs := []string{
		"http://de.linkedin.com/in/John-Doe/",
		"https://www.linkedin.com/in/j%C3%BCrgen-m%C3%BCller?trk=xyz",
		"https://linkedin.com/in/jane\u200b-doe",
	}
	for _, in := range inputs {
		once := ProfileURL(in)
		assert.NotEmpty(t, once)
		assert.Equal(t, once, ProfileURL(once))
	}
}

func TestApexDomain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare domain", "example.com", "example.com"},
		{"subdomain stripped", "https://shop.example.com/products", "example.com"},
		{"www stripped", "www.example.de", "example.de"},
		{"multi level suffix", "https://dept.example.co.uk", "example.co.uk"},
		{"uppercase folded", "EXAMPLE.COM", "example.com"},
		{"scheme added for bare host", "sub.acme.io", "acme.io"},
		{"no suffix", "localhost", ""},
		{"empty", "", ""},
		{"garbage", "not a domain at all", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApexDomain(tt.in))
		})
	}
}

func TestQueryText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercased and trimmed", "  Software Engineer Berlin  ", "software engineer berlin"},
		{"whitespace collapsed", "ceo\t\tacme   gmbh", "ceo acme gmbh"},
		{"newlines collapsed", "cto\nmunich", "cto munich"},
		{"already canonical", "founder hamburg", "founder hamburg"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryText(tt.in))
		})
	}
}
