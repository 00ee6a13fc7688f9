package model

import "time"

// CompanyRecord is the stored company row. Domain is the identity key when
// present; provisional rows created from a bare company mention have only a
// name until enrichment fills the rest.
type CompanyRecord struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Domain         string     `json:"domain,omitempty"`
	Website        string     `json:"website,omitempty"`
	LegalForm      string     `json:"legal_form,omitempty"`
	Industries     []string   `json:"industries,omitempty"`
	LocationsDE    []string   `json:"locations_de,omitempty"`
	Multinational  *bool      `json:"multinational,omitempty"`
	SizeEmployees  *int       `json:"size_employees,omitempty"`
	BusinessModel  []string   `json:"business_model,omitempty"`
	Products       []string   `json:"products,omitempty"`
	RecentNews     []string   `json:"recent_news,omitempty"`
	AddressText    string     `json:"address_text,omitempty"`
	PhoneInfo      string     `json:"phone_info,omitempty"`
	LastEnrichedAt *time.Time `json:"last_enriched_at,omitempty"`
	SourceName     string     `json:"source_name,omitempty"`
	SourceQuery    string     `json:"source_query,omitempty"`
}

// CompanyDraft is a company mention pulled off a person profile before any
// enrichment has run.
type CompanyDraft struct {
	Name        string `json:"name"`
	Domain      string `json:"domain,omitempty"`
	Website     string `json:"website,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	SourceName  string `json:"source_name,omitempty"`
	SourceQuery string `json:"source_query,omitempty"`
}

// CompanyEnrichment is the structured answer an enrichment provider returns.
// The field tags are the wire contract shared by every provider prompt; they
// stay underscore-cased so model output maps without a translation table.
type CompanyEnrichment struct {
	Company       string   `json:"Company"`
	LegalForm     string   `json:"Legal_Form"`
	Industries    []string `json:"Industries"`
	LocationsDE   []string `json:"Locations_Germany"`
	Multinational *bool    `json:"Multinational"`
	Website       string   `json:"Website"`
	SizeEmployees *int     `json:"Size_Employees"`
	BusinessModel []string `json:"Business_Model_Key_Points"`
	Products      []string `json:"Products_and_Services"`
	RecentNews    []string `json:"Recent_News"`
}

// PendingCompany identifies a row still missing enrichment data.
type PendingCompany struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}
