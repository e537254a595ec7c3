package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanRequest es el payload de POST /prestamos. Los campos llegan con los
// nombres camelCase que envía el dashboard.
type LoanRequest struct {
	UsuarioID         int64           `json:"usuarioId"`
	TransporteID      int64           `json:"transporteId"`
	EstacionOrigenID  int64           `json:"estacionOrigenId"`
	EstacionDestinoID int64           `json:"estacionDestinoId"`
	Inicio            time.Time       `json:"inicio"`
	Fin               time.Time       `json:"fin"`
	Costo             decimal.Decimal `json:"costo"`
	PagoID            *int64          `json:"pagoId,omitempty"`
}

type LoanResponse struct {
	ID                int64           `json:"id"`
	UsuarioID         int64           `json:"usuarioId"`
	TransporteID      int64           `json:"transporteId"`
	EstacionOrigenID  int64           `json:"estacionOrigenId"`
	EstacionDestinoID int64           `json:"estacionDestinoId"`
	Inicio            time.Time       `json:"inicio"`
	Fin               time.Time       `json:"fin"`
	Costo             decimal.Decimal `json:"costo"`
	Estado            string          `json:"estado"`
	PagoID            *int64          `json:"pagoId,omitempty"`
}
