package api

import (
	"ecomove/internal/service"
	"net/http"
)

type GeocodeHandler struct {
	Service *service.GeocodeService
}

func NewGeocodeHandler(svc *service.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{Service: svc}
}

// Geocode traduce una dirección a coordenadas usando Nominatim. El backend
// hace de proxy para no exponer al navegador a los límites de uso del
// servicio externo.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		http.Error(w, "address required", http.StatusBadRequest)
		return
	}
	results, err := h.Service.Geocode(r.Context(), address)
	if err != nil {
		http.Error(w, "Geocoding service unavailable", http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
