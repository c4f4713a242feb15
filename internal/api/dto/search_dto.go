package dto

// SearchResult echoes the query with its matches.
type SearchResult struct {
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Results []StreamListItem `json:"results"`
}

// SyncResult reports a search index rebuild.
type SyncResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
