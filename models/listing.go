package models

// Listing is one extracted entry from a results page.
// Link doubles as the identity key for deduplication.
type Listing struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Area  string `json:"area"`
	Link  string `json:"link"`
}
