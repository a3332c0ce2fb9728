package services

import "github.com/seifshamyy/aqar-scraper/models"

// Dedupe collapses listings sharing a link into one entry. A later
// occurrence supersedes the field values of an earlier one, but the
// entry keeps the position of the first occurrence.
func Dedupe(listings []models.Listing) []models.Listing {
	index := make(map[string]int, len(listings))
	unique := make([]models.Listing, 0, len(listings))

	for _, l := range listings {
		if i, seen := index[l.Link]; seen {
			unique[i] = l
			continue
		}
		index[l.Link] = len(unique)
		unique = append(unique, l)
	}

	return unique
}
