package domain

// Item is a catalog entry returned by the search endpoint
type Item struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SearchResponse is the payload of the search endpoint
type SearchResponse struct {
	Query   string `json:"q"`
	Results []Item `json:"results"`
	Delay   int    `json:"delay"` // injected latency in milliseconds, diagnostic only
}

// NoHighlight marks that no result is highlighted
const NoHighlight = -1
