package api

import (
	"database/sql"
	"ecomove/internal/db"
	"ecomove/internal/entities"
	"ecomove/internal/metrics"
	"ecomove/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type LoanHandler struct {
	Service *service.LoanService
	History *service.HistoryService
}

func NewLoanHandler(svc *service.LoanService, history *service.HistoryService) *LoanHandler {
	return &LoanHandler{Service: svc, History: history}
}

func loanResponse(l *db.Loan) *entities.LoanResponse {
	resp := &entities.LoanResponse{
		ID:                l.ID,
		UsuarioID:         l.UsuarioID,
		TransporteID:      l.TransporteID,
		EstacionOrigenID:  l.EstacionOrigenID,
		EstacionDestinoID: l.EstacionDestinoID,
		Inicio:            l.Inicio,
		Fin:               l.Fin,
		Costo:             l.Costo,
		Estado:            l.Estado,
	}
	if l.PagoID.Valid {
		pagoID := l.PagoID.Int64
		resp.PagoID = &pagoID
	}
	return resp
}

// CreateLoan arranca un préstamo pagado por fuera de Stripe (efectivo o
// crédito interno). Los pagos con tarjeta entran por el checkout.
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req entities.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	loan, err := h.Service.StartLoan(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	metrics.PrestamosIniciados.Inc()
	respondJSON(w, http.StatusCreated, loanResponse(loan))
}

func (h *LoanHandler) FinishLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	loan, err := h.Service.FinishLoan(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	metrics.PrestamosFinalizados.Inc()
	respondJSON(w, http.StatusOK, loanResponse(loan))
}

func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	loan, err := h.Service.GetLoan(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Loan not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, loanResponse(loan))
}

func (h *LoanHandler) ListLoansByUser(w http.ResponseWriter, r *http.Request) {
	usuarioID, err := strconv.ParseInt(mux.Vars(r)["usuarioId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	loans, err := h.Service.HistoryByUsuario(usuarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	out := make([]entities.LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, *loanResponse(&loans[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetHistory arma la vista de historial con filtros por usuario, texto y
// rango de fechas sobre el inicio del préstamo.
func (h *LoanHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	filter := entities.HistoryFilter{
		Search: r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("usuarioId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		filter.UsuarioID = id
	}
	if raw := r.URL.Query().Get("desde"); raw != "" {
		desde, err := parseFecha(raw)
		if err != nil {
			http.Error(w, "Invalid desde date", http.StatusBadRequest)
			return
		}
		filter.Desde = desde
	}
	if raw := r.URL.Query().Get("hasta"); raw != "" {
		hasta, err := parseFecha(raw)
		if err != nil {
			http.Error(w, "Invalid hasta date", http.StatusBadRequest)
			return
		}
		filter.Hasta = hasta
	}

	history, err := h.History.History(filter)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// parseFecha acepta fecha sola o timestamp RFC3339.
func parseFecha(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
