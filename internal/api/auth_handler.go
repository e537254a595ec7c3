package api

import (
	"ecomove/internal/entities"
	"ecomove/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Correo == "" || req.Password == "" {
		http.Error(w, "correo and password required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(req.Correo, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrCredencialesInvalidas) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
