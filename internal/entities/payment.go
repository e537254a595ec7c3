package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID         int64           `json:"id"`
	PrestamoID *int64          `json:"prestamoId,omitempty"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodoPago"`
	Estado     string          `json:"estado"`
	FechaPago  time.Time       `json:"fechaPago"`
	Referencia string          `json:"referencia,omitempty"`
}

// CheckoutRequest inicia una sesión de pago en Stripe. Si Prestamo viene
// informado, el préstamo queda pendiente hasta que Stripe confirme el pago.
type CheckoutRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CustomerEmail string          `json:"customerEmail"`
	Descripcion   string          `json:"descripcion"`
	Prestamo      *LoanRequest    `json:"prestamo,omitempty"`
}

type StripeSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Estados normalizados de la sesión de pago que consume el callback del
// dashboard.
const (
	SessionPaid              = "paid"
	SessionUnpaid            = "unpaid"
	SessionNoPaymentRequired = "no_payment_required"
	SessionUnknown           = "unknown"
)

type SessionStatusResponse struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	// PrestamoID se informa cuando la confirmación del pago creó el préstamo.
	PrestamoID *int64 `json:"prestamoId,omitempty"`
}

type PaymentSummary struct {
	Total     int             `json:"total"`
	Monto     decimal.Decimal `json:"monto"`
	Promedio  decimal.Decimal `json:"promedio"`
	PorEstado map[string]int  `json:"porEstado"`
}
