package handlers

import (
	"net/http"
	"strconv"

	"servicehub/internal/models"
	"servicehub/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

// CreateReview records a review authored by the caller. A client_id query
// parameter, if given, must name the caller.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id != caller {
			http.Error(w, "client_id does not match the authenticated account", http.StatusForbidden)
			return
		}
	}
	serviceID, err := paramID(r, "service_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rev, err := h.Service.CreateReview(r.Context(), caller, serviceID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (h *ReviewHandler) GetReviewsByServiceID(w http.ResponseWriter, r *http.Request) {
	serviceID, err := paramID(r, "service_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reviews, err := h.Service.GetReviewsByServiceID(r.Context(), serviceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) GetReviewsByAccountID(w http.ResponseWriter, r *http.Request) {
	accountID, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reviews, err := h.Service.GetReviewsByAccountID(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := paramID(r, "review_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rev, err := h.Service.UpdateReview(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := paramID(r, "review_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.DeleteReview(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) GetServiceRating(w http.ResponseWriter, r *http.Request) {
	serviceID, err := paramID(r, "service_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	avg, err := h.Service.ServiceRating(r.Context(), serviceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RatingResponse{AverageRating: avg})
}

func (h *ReviewHandler) GetAccountRating(w http.ResponseWriter, r *http.Request) {
	accountID, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	avg, err := h.Service.AccountRating(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RatingResponse{AverageRating: avg})
}
