package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummary_ContactFields(t *testing.T) {
	summary := "CTO at Acme GmbH. Reach me at jane@acme-corp.de or +49 711 1234567. More at https://acme-corp.de/about today."

	fields := ParseSummary(summary)
	assert.Equal(t, "jane@acme-corp.de", fields.Email)
	assert.Equal(t, "https://acme-corp.de/about", fields.Website)
	assert.Equal(t, "+49 711 1234567", fields.Phone)
}

func TestParseSummary_SkipsSocialWebsites(t *testing.T) {
	summary := "Follow me on https://linkedin.com/in/jane and https://twitter.com/jane. Company site: acme-corp.de has details."

	fields := ParseSummary(summary)
	assert.Equal(t, "https://acme-corp.de", fields.Website)
}

func TestParseSummary_ExperienceYears(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"years of experience", "Engineer with 10+ years of experience in automotive.", 10},
		{"over n years", "Leading teams for over 7 years now.", 7},
		{"plus years", "12+ years building software.", 12},
		{"bare years last resort", "Spent 5 years at Bosch.", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseSummary(tt.in)
			require.NotNil(t, fields.ExperienceYears)
			assert.Equal(t, tt.want, *fields.ExperienceYears)
		})
	}
}

func TestParseSummary_NoExperience(t *testing.T) {
	fields := ParseSummary("Passionate about sales and growth.")
	assert.Nil(t, fields.ExperienceYears)
}

func TestParseSummary_Insights(t *testing.T) {
	summary := "Scaled revenue to 40M EUR. Built partnerships across Europe with Siemens. passionate about growth and sales. Led a team of 120 engineers."

	fields := ParseSummary(summary)
	assert.Contains(t, fields.Insights, "Scaled revenue to 40M EUR")
	assert.Contains(t, fields.Insights, "Built partnerships across Europe with Siemens")
	assert.NotContains(t, fields.Insights, "passionate about growth and sales")
	assert.LessOrEqual(t, len(fields.Insights), 5)
}

func TestParseSummary_Empty(t *testing.T) {
	fields := ParseSummary("  ")
	assert.Empty(t, fields.Email)
	assert.Empty(t, fields.Website)
	assert.Empty(t, fields.Phone)
	assert.Nil(t, fields.ExperienceYears)
	assert.Empty(t, fields.Insights)
}

func TestCleanInsights(t *testing.T) {
	in := []string{
		"• Scaled revenue to 40M EUR",
		"Scaled revenue to 40M EUR",
		"x",
		"View Jane Doe's profile on LinkedIn, a professional community of 1 billion members.",
		"Built partnerships with Siemens",
	}

	got := CleanInsights(in)
	assert.Equal(t, []string{"Scaled revenue to 40M EUR", "Built partnerships with Siemens"}, got)
}
