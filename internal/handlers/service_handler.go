package handlers

import (
	"net/http"

	"servicehub/internal/models"
	"servicehub/internal/services"
)

type ServiceHandler struct {
	Service *services.ServiceService
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var req models.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.Service.CreateService(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r, "service_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	svc, err := h.Service.GetService(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) GetServicesByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := paramID(r, "account_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.Service.GetServicesByAccountID(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := paramID(r, "service_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.UpdateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.Service.UpdateService(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := paramID(r, "service_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.DeleteService(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
