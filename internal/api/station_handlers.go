package api

import (
	"database/sql"
	"ecomove/internal/entities"
	"ecomove/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

type StationHandler struct {
	Service *service.StationService
}

func NewStationHandler(svc *service.StationService) *StationHandler {
	return &StationHandler{Service: svc}
}

func (h *StationHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req entities.StationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	station, err := h.Service.Create(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusCreated, station)
}

func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.Service.List()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stations)
}

func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	station, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Station not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, station)
}

func (h *StationHandler) UpdateStation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req entities.StationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	station, err := h.Service.Update(id, &req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Station not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not update station", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, station)
}

func (h *StationHandler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Deactivate(id); err != nil {
		http.Error(w, "Could not delete station", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Estación dada de baja"})
}
