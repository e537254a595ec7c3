package service

import (
	"database/sql"
	"ecomove/internal/db"
	"ecomove/internal/entities"
	httperrors "ecomove/internal/errors"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStore interface {
	Create(p *db.Payment) error
	List() ([]db.Payment, error)
	GetByID(id int64) (*db.Payment, error)
	SettleBySession(sessionID, estado string, prestamoID *int64) error
	SavePending(sessionID string, payload []byte) error
	TakePending(sessionID string) ([]byte, bool, error)
}

type StripeGateway interface {
	CreateCheckoutSession(amount int64, currency, description, customerEmail, clientReferenceID string) (url, id string, err error)
	SessionPaymentStatus(sessionID string) (string, error)
	RefundPaymentBySessionID(sessionID string) error
}

// LoanStarter es el orquestador que crea el préstamo una vez confirmado el
// pago.
type LoanStarter interface {
	StartLoan(req *entities.LoanRequest) (*db.Loan, error)
}

type PaymentService struct {
	payments PaymentStore
	stripe   StripeGateway
	loans    LoanStarter
}

func NewPaymentService(payments PaymentStore, stripe StripeGateway, loans LoanStarter) *PaymentService {
	return &PaymentService{payments: payments, stripe: stripe, loans: loans}
}

func paymentResponse(p *db.Payment) *entities.PaymentResponse {
	resp := &entities.PaymentResponse{
		ID:         p.ID,
		Monto:      p.Monto,
		MetodoPago: p.MetodoPago,
		Estado:     p.Estado,
		FechaPago:  p.FechaPago,
		Referencia: p.Referencia,
	}
	if p.PrestamoID.Valid {
		id := p.PrestamoID.Int64
		resp.PrestamoID = &id
	}
	return resp
}

func (s *PaymentService) List() ([]entities.PaymentResponse, error) {
	payments, err := s.payments.List()
	if err != nil {
		return nil, err
	}
	out := make([]entities.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentResponse(&payments[i]))
	}
	return out, nil
}

func (s *PaymentService) GetByID(id int64) (*entities.PaymentResponse, error) {
	payment, err := s.payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	return paymentResponse(payment), nil
}

// Summarize calcula totales y promedio por barrido lineal sobre la colección
// cargada, como hacía la vista de pagos.
func Summarize(payments []entities.PaymentResponse) entities.PaymentSummary {
	summary := entities.PaymentSummary{
		Total:     len(payments),
		PorEstado: map[string]int{},
	}
	for _, p := range payments {
		summary.Monto = summary.Monto.Add(p.Monto)
		summary.PorEstado[p.Estado]++
	}
	if summary.Total > 0 {
		summary.Promedio = summary.Monto.Div(decimal.NewFromInt(int64(summary.Total))).Round(2)
	}
	return summary
}

// Checkout abre la sesión de pago y deja registrado el pago PENDIENTE. Si la
// solicitud trae un préstamo, el payload queda guardado bajo el id de sesión
// hasta que Stripe confirme; recién ahí se crea el préstamo.
func (s *PaymentService) Checkout(req *entities.CheckoutRequest) (*entities.StripeSessionResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, httperrors.BadRequest("el monto debe ser mayor a 0")
	}
	if req.CustomerEmail == "" {
		return nil, httperrors.BadRequest("el correo del cliente es requerido")
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	description := req.Descripcion
	if description == "" {
		description = "Préstamo EcoMove"
	}

	// Redondeo al centavo: IntPart solo trunca y perdería fracciones.
	amountCents := req.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	referencia := uuid.NewString()

	url, sessionID, err := s.stripe.CreateCheckoutSession(amountCents, currency, description, req.CustomerEmail, referencia)
	if err != nil {
		return nil, fmt.Errorf("error creando sesión de Stripe: %w", err)
	}

	payment := &db.Payment{
		Monto:           req.Amount,
		MetodoPago:      "TARJETA",
		Estado:          db.PagoPendiente,
		FechaPago:       time.Now().UTC(),
		StripeSessionID: sql.NullString{String: sessionID, Valid: true},
		Referencia:      referencia,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}

	if req.Prestamo != nil {
		payload, err := json.Marshal(req.Prestamo)
		if err != nil {
			return nil, fmt.Errorf("error serializando préstamo pendiente: %w", err)
		}
		if err := s.payments.SavePending(sessionID, payload); err != nil {
			return nil, err
		}
	}

	return &entities.StripeSessionResponse{SessionID: sessionID, URL: url}, nil
}

// SessionStatus consulta Stripe una única vez y resuelve la sesión.
func (s *PaymentService) SessionStatus(sessionID string) (*entities.SessionStatusResponse, error) {
	raw, err := s.stripe.SessionPaymentStatus(sessionID)
	if err != nil {
		return nil, fmt.Errorf("error consultando sesión %s: %w", sessionID, err)
	}
	return s.ResolveSession(sessionID, raw)
}

// MapSessionStatus normaliza el payment_status de Stripe a los estados que
// muestra el callback.
func MapSessionStatus(raw string) string {
	switch raw {
	case "paid":
		return entities.SessionPaid
	case "unpaid":
		return entities.SessionUnpaid
	case "no_payment_required":
		return entities.SessionNoPaymentRequired
	default:
		return entities.SessionUnknown
	}
}

// ResolveSession aplica el desenlace de la sesión: con "paid" crea exactamente
// un préstamo a partir del payload pendiente y cierra el pago; con cualquier
// otro estado descarta el payload sin crear nada. TakePending borra y devuelve
// en un solo paso, así el callback y el webhook no duplican el préstamo.
func (s *PaymentService) ResolveSession(sessionID, rawStatus string) (*entities.SessionStatusResponse, error) {
	status := MapSessionStatus(rawStatus)
	resp := &entities.SessionStatusResponse{SessionID: sessionID, Status: status}

	payload, pending, err := s.payments.TakePending(sessionID)
	if err != nil {
		return nil, err
	}

	if status != entities.SessionPaid {
		if pending {
			log.Printf("Sesión %s terminó %s; préstamo pendiente descartado", sessionID, status)
		}
		estado := db.PagoFallido
		if status != entities.SessionUnpaid {
			estado = db.PagoCancelado
		}
		if err := s.payments.SettleBySession(sessionID, estado, nil); err != nil {
			log.Printf("ALERTA: no se pudo cerrar el pago de la sesión %s: %v", sessionID, err)
		}
		return resp, nil
	}

	if !pending {
		// Pago confirmado sin préstamo pendiente: o nunca lo hubo, o ya lo
		// creó una resolución anterior.
		if err := s.payments.SettleBySession(sessionID, db.PagoCompletado, nil); err != nil {
			log.Printf("ALERTA: no se pudo cerrar el pago de la sesión %s: %v", sessionID, err)
		}
		return resp, nil
	}

	var loanReq entities.LoanRequest
	if err := json.Unmarshal(payload, &loanReq); err != nil {
		return nil, fmt.Errorf("payload de préstamo pendiente corrupto para sesión %s: %w", sessionID, err)
	}

	loan, err := s.loans.StartLoan(&loanReq)
	if err != nil {
		// El cobro ya se hizo pero el préstamo no pudo arrancar: se
		// reembolsa y el pago queda CANCELADO.
		log.Printf("ALERTA: pago %s confirmado pero el préstamo no pudo crearse: %v", sessionID, err)
		if errRefund := s.stripe.RefundPaymentBySessionID(sessionID); errRefund != nil {
			log.Printf("ALERTA: falló el reembolso de la sesión %s: %v", sessionID, errRefund)
		}
		if errSettle := s.payments.SettleBySession(sessionID, db.PagoCancelado, nil); errSettle != nil {
			log.Printf("ALERTA: no se pudo cerrar el pago de la sesión %s: %v", sessionID, errSettle)
		}
		return nil, fmt.Errorf("%w: %v", ErrPagoNoConfirmado, err)
	}

	if err := s.payments.SettleBySession(sessionID, db.PagoCompletado, &loan.ID); err != nil {
		log.Printf("ALERTA: préstamo %d creado pero el pago de la sesión %s no quedó cerrado: %v", loan.ID, sessionID, err)
	}
	resp.PrestamoID = &loan.ID
	return resp, nil
}

// MarkRefunded cierra como CANCELADO el pago de una sesión reembolsada y
// descarta cualquier préstamo que siguiera pendiente.
func (s *PaymentService) MarkRefunded(sessionID string) error {
	if _, pending, err := s.payments.TakePending(sessionID); err != nil {
		return err
	} else if pending {
		log.Printf("Sesión %s reembolsada; préstamo pendiente descartado", sessionID)
	}
	return s.payments.SettleBySession(sessionID, db.PagoCancelado, nil)
}
