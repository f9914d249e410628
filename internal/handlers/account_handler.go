package handlers

import (
	"net/http"

	"servicehub/internal/models"
	"servicehub/internal/services"
)

type AccountHandler struct {
	Service *services.AccountService
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.Service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.Service.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.Service.UpdateAccount(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.DeleteAccount(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Nearby serves /api/accounts/nearby?lat=&lon=&radius_km=.
func (h *AccountHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParam(r, "lat")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lon, err := parseFloatParam(r, "lon")
	if err != nil {
		writeError(w, r, err)
		return
	}
	radius, err := parseFloatParam(r, "radius_km")
	if err != nil {
		writeError(w, r, err)
		return
	}

	accounts, err := h.Service.Nearby(r.Context(), models.GeoPoint{Latitude: lat, Longitude: lon}, radius)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
