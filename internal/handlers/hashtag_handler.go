package handlers

import (
	"net/http"

	"servicehub/internal/services"
)

type HashtagHandler struct {
	Service *services.HashtagService
}

// AddHashtags takes a JSON array of tags and returns the newly linked ones.
func (h *HashtagHandler) AddHashtags(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	accountID, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var tags []string
	if !decodeJSON(w, r, &tags) {
		return
	}
	added, err := h.Service.AddHashtags(r.Context(), caller, accountID, tags)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *HashtagHandler) GetAccountHashtags(w http.ResponseWriter, r *http.Request) {
	accountID, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	tags, err := h.Service.GetAccountHashtags(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *HashtagHandler) SearchHashtags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Service.SearchHashtags(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *HashtagHandler) GetAccountsByHashtag(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.GetAccountsByHashtag(r.Context(), getParam(r, "tag"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *HashtagHandler) RemoveHashtag(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	accountID, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.RemoveHashtag(r.Context(), caller, accountID, getParam(r, "tag")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
