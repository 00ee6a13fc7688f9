package model

// SearchHit is one result item from a people search, either fetched live
// from the Custom Search API or loaded from a saved result file.
type SearchHit struct {
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	Snippet  string    `json:"snippet"`
	Metatags []Metatag `json:"metatags,omitempty"`
}

// Metatag carries the og:* page metadata attached to a hit. Profile pages
// expose a cleaner headline and description here than in the snippet.
type Metatag struct {
	FirstName     string `json:"profile:first_name,omitempty"`
	LastName      string `json:"profile:last_name,omitempty"`
	OGTitle       string `json:"og:title,omitempty"`
	OGDescription string `json:"og:description,omitempty"`
	OGURL         string `json:"og:url,omitempty"`
}

// SearchQuery is a stored query-provenance row. Text is normalized before
// storage so re-runs of the same query reuse one row.
type SearchQuery struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Engine     string `json:"engine"`
	RunCount   int    `json:"run_count"`
	LastRunAt  string `json:"last_run_at,omitempty"`
	ResultRows int    `json:"result_rows"`
}
