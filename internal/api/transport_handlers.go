package api

import (
	"database/sql"
	"ecomove/internal/entities"
	"ecomove/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

type TransportHandler struct {
	Service *service.TransportService
}

func NewTransportHandler(svc *service.TransportService) *TransportHandler {
	return &TransportHandler{Service: svc}
}

func (h *TransportHandler) CreateTransport(w http.ResponseWriter, r *http.Request) {
	var req entities.TransportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	transport, err := h.Service.Create(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusCreated, transport)
}

func (h *TransportHandler) ListTransports(w http.ResponseWriter, r *http.Request) {
	transports, err := h.Service.List()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, transports)
}

func (h *TransportHandler) GetTransport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	transport, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Transport not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, transport)
}

func (h *TransportHandler) UpdateTransport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req entities.TransportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	transport, err := h.Service.Update(id, &req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Transport not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, transport)
}

func (h *TransportHandler) DeleteTransport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Deactivate(id); err != nil {
		http.Error(w, "Could not delete transport", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Transporte dado de baja"})
}
