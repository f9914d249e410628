package search

import (
	"strings"

	"servicehub/internal/models"
)

// MatchesKeyword is true when keyword is blank or is a case-insensitive
// substring of the service title or description.
func MatchesKeyword(svc models.Service, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(svc.Title), keyword) ||
		strings.Contains(strings.ToLower(svc.Description), keyword)
}

// MatchesPriceRange checks inclusive bounds; a nil bound accepts all.
func MatchesPriceRange(svc models.Service, minPrice, maxPrice *int64) bool {
	if minPrice != nil && svc.Price < *minPrice {
		return false
	}
	if maxPrice != nil && svc.Price > *maxPrice {
		return false
	}
	return true
}

// MatchesAnyTag reports whether owned and wanted share at least one tag.
// Both sides are expected to be normalized. Empty wanted accepts all.
func MatchesAnyTag(owned []string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	ownedSet := make(map[string]struct{}, len(owned))
	for _, t := range owned {
		ownedSet[t] = struct{}{}
	}
	for _, t := range wanted {
		if _, ok := ownedSet[t]; ok {
			return true
		}
	}
	return false
}
