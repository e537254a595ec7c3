package api

import (
	"database/sql"
	"ecomove/internal/entities"
	"ecomove/internal/metrics"
	"ecomove/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.List()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	payment, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Payment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// GetPaymentsSummary calcula los totales que muestran las tarjetas del
// panel de pagos.
func (h *PaymentHandler) GetPaymentsSummary(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.List()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, service.Summarize(payments))
}

// CreateCheckoutSession abre la sesión de Stripe y devuelve la URL de
// redirección. El préstamo pendiente queda guardado hasta la confirmación.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req entities.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Checkout(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetSessionStatus es el endpoint que consulta el callback del dashboard al
// volver de Stripe. Resuelve la sesión: si el pago se acreditó y había un
// préstamo pendiente, acá se crea.
func (h *PaymentHandler) GetSessionStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.SessionStatus(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	metrics.PagosConfirmados.WithLabelValues(resp.Status).Inc()
	respondJSON(w, http.StatusOK, resp)
}
