package api

import (
	"database/sql"
	httperrors "ecomove/internal/errors"
	"ecomove/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondServiceError traduce los errores del dominio a códigos HTTP.
// Cualquier cosa no reconocida se responde como error de base de datos.
func respondServiceError(w http.ResponseWriter, err error) {
	var httpErr *httperrors.HTTPError
	switch {
	case errors.As(err, &httpErr):
		http.Error(w, httpErr.Message, httpErr.Code)
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrTransporteNoEnEstacion),
		errors.Is(err, service.ErrEstacionSinCapacidad),
		errors.Is(err, service.ErrTransporteNoDisponible),
		errors.Is(err, service.ErrPrestamoYaFinalizado):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrPagoNoConfirmado):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		http.Error(w, "Database error", http.StatusInternalServerError)
	}
}
