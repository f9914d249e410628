package handlers

import (
	"net/http"

	"servicehub/internal/models"
	"servicehub/internal/services"
)

type SearchHandler struct {
	Service *services.SearchService
}

// Search serves /api/search: services, hashtags and accounts for one query.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := models.ParseFilterType(r.URL.Query().Get("filter_type"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	structured, err := parseServiceSearch(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.Service.GlobalSearch(r.Context(), r.URL.Query().Get("query"), filter, structured)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SearchHandler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseServiceSearch(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.Service.AdvancedSearch(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// SearchServices serves the keyword and price search.
func (h *SearchHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	minPrice, err := parsePrice(r, "min_price")
	if err != nil {
		writeError(w, r, err)
		return
	}
	maxPrice, err := parsePrice(r, "max_price")
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.Service.SearchServices(r.Context(), r.URL.Query().Get("keyword"), minPrice, maxPrice)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
