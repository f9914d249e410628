package models

// SortOption selects the ordering of a service search.
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortPriceLow  SortOption = "price_low"
	SortPriceHigh SortOption = "price_high"
	SortRating    SortOption = "rating"
)

// ParseSortOption maps the query value to a SortOption. Empty means relevance.
func ParseSortOption(raw string) (SortOption, error) {
	switch SortOption(raw) {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceLow, SortPriceHigh, SortRating:
		return SortOption(raw), nil
	}
	return "", ErrInvalidSort
}

// FilterType restricts which groups the unified search returns.
type FilterType string

const (
	FilterAll      FilterType = ""
	FilterAccounts FilterType = "accounts"
	FilterServices FilterType = "services"
	FilterHashtags FilterType = "hashtags"
)

func ParseFilterType(raw string) (FilterType, error) {
	switch FilterType(raw) {
	case FilterAll, FilterAccounts, FilterServices, FilterHashtags:
		return FilterType(raw), nil
	}
	return "", ErrInvalidFilter
}

// Includes reports whether group g is part of the response for f.
func (f FilterType) Includes(g FilterType) bool {
	return f == FilterAll || f == g
}

// ServiceSearchRequest holds the structured filters of an advanced search.
type ServiceSearchRequest struct {
	Keyword     string
	ServiceType string
	MinPrice    *int64
	MaxPrice    *int64
	Hashtags    []string
	Sort        SortOption
}

// HasStructuredFilters reports whether anything besides the keyword is set.
func (r ServiceSearchRequest) HasStructuredFilters() bool {
	return r.MinPrice != nil || r.MaxPrice != nil || len(r.Hashtags) > 0 || (r.Sort != "" && r.Sort != SortRelevance)
}

// GlobalSearchResponse groups unified search results. Groups excluded by
// filter_type are omitted from the JSON.
type GlobalSearchResponse struct {
	Services *[]Service        `json:"services,omitempty"`
	Hashtags *[]Hashtag        `json:"hashtags,omitempty"`
	Accounts *[]AccountSummary `json:"accounts,omitempty"`
}
