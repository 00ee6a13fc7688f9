package model

// PersonProfile is a draft profile extracted from a single search hit.
// Count fields keep the shorthand the page showed ("1K", "500+"); numeric
// parsing happens at the persistence mapping step.
type PersonProfile struct {
	Name            string   `json:"name"`
	ProfileURL      string   `json:"profile_url"`
	Summary         string   `json:"summary"`
	CurrentPosition string   `json:"current_position,omitempty"`
	Company         string   `json:"company,omitempty"`
	CompanyWebsite  string   `json:"company_website,omitempty"`
	CompanyDomain   string   `json:"company_domain,omitempty"`
	Location        string   `json:"location,omitempty"`
	FollowerCount   string   `json:"follower_count,omitempty"`
	ConnectionCount string   `json:"connection_count,omitempty"`
	Email           string   `json:"email,omitempty"`
	Website         string   `json:"website,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Insights        []string `json:"insights,omitempty"`
	SourceName      string   `json:"source_name,omitempty"`
	SourceQuery     string   `json:"source_query,omitempty"`
}

// PersonRecord is the stored person row. LinkedInProfile is the only stable
// identity; every other column is nullable and merged with fill-if-null
// semantics on re-ingestion. CompanyName and CompanyDomain are populated by
// joined report reads only.
type PersonRecord struct {
	ID                  int64  `json:"id"`
	LinkedInProfile     string `json:"linkedin_profile"`
	FirstName           string `json:"first_name,omitempty"`
	LastName            string `json:"last_name,omitempty"`
	TitleCurrent        string `json:"title_current,omitempty"`
	Email               string `json:"email,omitempty"`
	LocationText        string `json:"location_text,omitempty"`
	ConnectionsLinkedIn *int   `json:"connections_linkedin,omitempty"`
	FollowersLinkedIn   *int   `json:"followers_linkedin,omitempty"`
	WebsiteInfo         string `json:"website_info,omitempty"`
	PhoneInfo           string `json:"phone_info,omitempty"`
	InfoRaw             string `json:"info_raw,omitempty"`
	InsightsText        string `json:"insights_text,omitempty"`
	LookupDate          string `json:"lookup_date,omitempty"`
	SourceName          string `json:"source_name,omitempty"`
	SourceQuery         string `json:"source_query,omitempty"`
	CompanyID           *int64 `json:"company_id,omitempty"`
	CompanyName         string `json:"company_name,omitempty"`
	CompanyDomain       string `json:"company_domain,omitempty"`
}

// OutreachMessage is a scheduled outreach row keyed by the person's
// canonical profile URL. The duplicate-person merge repoints these rows.
type OutreachMessage struct {
	ID              int64  `json:"id"`
	LinkedInProfile string `json:"linkedin_profile"`
	Channel         string `json:"channel"`
	StageNo         int    `json:"stage_no"`
	RenderedMD      string `json:"rendered_md"`
	Status          string `json:"status"`
	ScheduledAt     string `json:"scheduled_at,omitempty"`
	SentAt          string `json:"sent_at,omitempty"`
	RepliedAt       string `json:"replied_at,omitempty"`
}

// Outreach message statuses.
const (
	OutreachStatusScheduled = "scheduled"
	OutreachStatusSent      = "sent"
	OutreachStatusReplied   = "replied"
)
