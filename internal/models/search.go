package models

// SearchRequest is the inbound search payload, shared by the HTTP
// endpoint and the CLI JSON transport. Plavra is the caller's keyword
// list used for relevance rating.
type SearchRequest struct {
	Titles     []string `json:"titles"`
	Plavra     []string `json:"plavra"`
	TimePeriod string   `json:"time_period"`
	Location   string   `json:"location"`
}

// ListingEntry is one parsed row from a search-results page before
// detail enrichment.
type ListingEntry struct {
	Title     string
	URL       string
	Company   string
	Location  string
	DayPosted DayPosted
}

// SearchResult pairs the enriched records with the raw listing count.
// TotalCount is the number of cards found across all listing pages
// before per-entry extraction failures are dropped, so it can exceed
// len(Records).
type SearchResult struct {
	Records    []JobRecord `json:"records"`
	TotalCount int         `json:"totalCount"`
}
