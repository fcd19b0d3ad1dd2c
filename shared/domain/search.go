package domain

// SearchResults is the slice of the instance search response the composer
// cares about. The API also returns statuses; they are never requested.
type SearchResults struct {
	Accounts []Account `json:"accounts"`
	Hashtags []Tag     `json:"hashtags"`
}
