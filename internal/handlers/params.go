package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"servicehub/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func paramID(r *http.Request, name string) (int64, error) {
	raw := getParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrInvalidArgument, name)
	}
	return id, nil
}

// parsePrice reads an optional integer price. Fractions and non-numbers are
// rejected rather than truncated.
func parsePrice(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", models.ErrInvalidArgument, name)
	}
	return &v, nil
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrInvalidArgument, name)
	}
	return v, nil
}

// parseHashtags accepts both repeated and comma separated values.
func parseHashtags(r *http.Request) []string {
	var tags []string
	for _, raw := range r.URL.Query()["hashtags"] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				tags = append(tags, p)
			}
		}
	}
	return tags
}

// parseServiceSearch reads the structured filters shared by the search
// endpoints.
func parseServiceSearch(r *http.Request) (models.ServiceSearchRequest, error) {
	q := r.URL.Query()
	req := models.ServiceSearchRequest{
		Keyword:     q.Get("query"),
		ServiceType: q.Get("service_type"),
		Hashtags:    parseHashtags(r),
	}

	var err error
	if req.MinPrice, err = parsePrice(r, "min_price"); err != nil {
		return req, err
	}
	if req.MaxPrice, err = parsePrice(r, "max_price"); err != nil {
		return req, err
	}
	if req.Sort, err = models.ParseSortOption(strings.TrimSpace(q.Get("sort"))); err != nil {
		return req, err
	}
	return req, nil
}
