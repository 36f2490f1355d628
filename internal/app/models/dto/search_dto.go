package dto

// SearchResponse carries the typed result list of a search.
type SearchResponse struct {
	Success bool        `json:"success"`
	Type    string      `json:"type"`
	Query   string      `json:"query"`
	Results interface{} `json:"results"`
}
