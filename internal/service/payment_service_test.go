package service_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ecomove/internal/db"
	"ecomove/internal/entities"
	"ecomove/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settledCall struct {
	estado     string
	prestamoID *int64
}

type fakePaymentStore struct {
	payments map[string]*db.Payment
	pendings map[string][]byte
	settled  map[string]settledCall
	nextID   int64
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		payments: map[string]*db.Payment{},
		pendings: map[string][]byte{},
		settled:  map[string]settledCall{},
	}
}

func (f *fakePaymentStore) Create(p *db.Payment) error {
	f.nextID++
	p.ID = f.nextID
	copia := *p
	f.payments[p.StripeSessionID.String] = &copia
	return nil
}

func (f *fakePaymentStore) List() ([]db.Payment, error) {
	var out []db.Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePaymentStore) GetByID(id int64) (*db.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			copia := *p
			return &copia, nil
		}
	}
	return nil, errors.New("pago no encontrado")
}

func (f *fakePaymentStore) SettleBySession(sessionID, estado string, prestamoID *int64) error {
	f.settled[sessionID] = settledCall{estado: estado, prestamoID: prestamoID}
	return nil
}

func (f *fakePaymentStore) SavePending(sessionID string, payload []byte) error {
	f.pendings[sessionID] = payload
	return nil
}

func (f *fakePaymentStore) TakePending(sessionID string) ([]byte, bool, error) {
	payload, ok := f.pendings[sessionID]
	if !ok {
		return nil, false, nil
	}
	delete(f.pendings, sessionID)
	return payload, true, nil
}

type fakeStripeGateway struct {
	status       string
	amountCents  int64
	refundCalled bool
}

func (f *fakeStripeGateway) CreateCheckoutSession(amount int64, currency, description, customerEmail, clientReferenceID string) (string, string, error) {
	f.amountCents = amount
	return "https://checkout.stripe.test/s", "cs_test_123", nil
}

func (f *fakeStripeGateway) SessionPaymentStatus(sessionID string) (string, error) {
	return f.status, nil
}

func (f *fakeStripeGateway) RefundPaymentBySessionID(sessionID string) error {
	f.refundCalled = true
	return nil
}

type fakeLoanStarter struct {
	started []entities.LoanRequest
	fail    bool
}

func (f *fakeLoanStarter) StartLoan(req *entities.LoanRequest) (*db.Loan, error) {
	if f.fail {
		return nil, service.ErrTransporteNoDisponible
	}
	f.started = append(f.started, *req)
	return &db.Loan{ID: 42, Estado: db.PrestamoEnCurso}, nil
}

func checkoutConPrestamo() *entities.CheckoutRequest {
	inicio := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &entities.CheckoutRequest{
		Amount:        decimal.NewFromFloat(15.50),
		CustomerEmail: "ana@ecomove.test",
		Prestamo: &entities.LoanRequest{
			UsuarioID:         7,
			TransporteID:      10,
			EstacionOrigenID:  1,
			EstacionDestinoID: 2,
			Inicio:            inicio,
			Fin:               inicio.Add(time.Hour),
			Costo:             decimal.NewFromFloat(15.50),
		},
	}
}

func TestMapSessionStatus(t *testing.T) {
	assert.Equal(t, entities.SessionPaid, service.MapSessionStatus("paid"))
	assert.Equal(t, entities.SessionUnpaid, service.MapSessionStatus("unpaid"))
	assert.Equal(t, entities.SessionNoPaymentRequired, service.MapSessionStatus("no_payment_required"))
	assert.Equal(t, entities.SessionUnknown, service.MapSessionStatus("expired"))
	assert.Equal(t, entities.SessionUnknown, service.MapSessionStatus(""))
}

func TestCheckoutCreaPagoPendiente(t *testing.T) {
	store := newFakePaymentStore()
	gateway := &fakeStripeGateway{}
	svc := service.NewPaymentService(store, gateway, &fakeLoanStarter{})

	resp, err := svc.Checkout(checkoutConPrestamo())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.test/s", resp.URL)

	pago := store.payments["cs_test_123"]
	require.NotNil(t, pago)
	assert.Equal(t, db.PagoPendiente, pago.Estado)
	assert.Equal(t, "TARJETA", pago.MetodoPago)
	assert.True(t, pago.Monto.Equal(decimal.NewFromFloat(15.50)))
	assert.NotEmpty(t, pago.Referencia)

	// El préstamo queda guardado, no creado
	payload, ok := store.pendings["cs_test_123"]
	require.True(t, ok)
	var saved entities.LoanRequest
	require.NoError(t, json.Unmarshal(payload, &saved))
	assert.Equal(t, int64(7), saved.UsuarioID)
}

func TestCheckoutRedondeaCentavos(t *testing.T) {
	gateway := &fakeStripeGateway{}
	svc := service.NewPaymentService(newFakePaymentStore(), gateway, &fakeLoanStarter{})

	// 15.505 no entra en centavos exactos: se redondea, no se trunca
	req := checkoutConPrestamo()
	req.Amount = decimal.NewFromFloat(15.505)

	_, err := svc.Checkout(req)
	require.NoError(t, err)
	assert.Equal(t, int64(1551), gateway.amountCents)
}

func TestCheckoutValidaciones(t *testing.T) {
	svc := service.NewPaymentService(newFakePaymentStore(), &fakeStripeGateway{}, &fakeLoanStarter{})

	req := checkoutConPrestamo()
	req.Amount = decimal.Zero
	_, err := svc.Checkout(req)
	assert.Error(t, err)

	req = checkoutConPrestamo()
	req.CustomerEmail = ""
	_, err = svc.Checkout(req)
	assert.Error(t, err)
}

func TestResolveSessionPagadaCreaUnSoloPrestamo(t *testing.T) {
	store := newFakePaymentStore()
	gateway := &fakeStripeGateway{status: "paid"}
	starter := &fakeLoanStarter{}
	svc := service.NewPaymentService(store, gateway, starter)

	_, err := svc.Checkout(checkoutConPrestamo())
	require.NoError(t, err)

	resp, err := svc.SessionStatus("cs_test_123")
	require.NoError(t, err)

	assert.Equal(t, entities.SessionPaid, resp.Status)
	require.NotNil(t, resp.PrestamoID)
	assert.Equal(t, int64(42), *resp.PrestamoID)
	assert.Len(t, starter.started, 1)

	settle := store.settled["cs_test_123"]
	assert.Equal(t, db.PagoCompletado, settle.estado)
	require.NotNil(t, settle.prestamoID)
	assert.Equal(t, int64(42), *settle.prestamoID)

	// Una segunda resolución (callback y webhook compiten) no duplica nada
	resp2, err := svc.SessionStatus("cs_test_123")
	require.NoError(t, err)
	assert.Nil(t, resp2.PrestamoID)
	assert.Len(t, starter.started, 1)
	assert.Empty(t, store.pendings)
}

func TestResolveSessionNoPagadaDescartaPrestamo(t *testing.T) {
	store := newFakePaymentStore()
	gateway := &fakeStripeGateway{status: "unpaid"}
	starter := &fakeLoanStarter{}
	svc := service.NewPaymentService(store, gateway, starter)

	_, err := svc.Checkout(checkoutConPrestamo())
	require.NoError(t, err)

	resp, err := svc.SessionStatus("cs_test_123")
	require.NoError(t, err)

	assert.Equal(t, entities.SessionUnpaid, resp.Status)
	assert.Nil(t, resp.PrestamoID)
	assert.Empty(t, starter.started, "sin pago no se crea el préstamo")
	assert.Empty(t, store.pendings, "el payload pendiente se descarta")
	assert.Equal(t, db.PagoFallido, store.settled["cs_test_123"].estado)
}

func TestResolveSessionExpiradaCancelaPago(t *testing.T) {
	store := newFakePaymentStore()
	svc := service.NewPaymentService(store, &fakeStripeGateway{}, &fakeLoanStarter{})

	_, err := svc.Checkout(checkoutConPrestamo())
	require.NoError(t, err)

	resp, err := svc.ResolveSession("cs_test_123", "expired")
	require.NoError(t, err)

	assert.Equal(t, entities.SessionUnknown, resp.Status)
	assert.Equal(t, db.PagoCancelado, store.settled["cs_test_123"].estado)
}

func TestResolveSessionPagadaSinPendiente(t *testing.T) {
	store := newFakePaymentStore()
	starter := &fakeLoanStarter{}
	svc := service.NewPaymentService(store, &fakeStripeGateway{status: "paid"}, starter)

	// Checkout sin préstamo asociado
	req := checkoutConPrestamo()
	req.Prestamo = nil
	_, err := svc.Checkout(req)
	require.NoError(t, err)

	resp, err := svc.SessionStatus("cs_test_123")
	require.NoError(t, err)

	assert.Equal(t, entities.SessionPaid, resp.Status)
	assert.Nil(t, resp.PrestamoID)
	assert.Empty(t, starter.started)
	assert.Equal(t, db.PagoCompletado, store.settled["cs_test_123"].estado)
}

func TestResolveSessionReembolsaSiElPrestamoFalla(t *testing.T) {
	store := newFakePaymentStore()
	gateway := &fakeStripeGateway{status: "paid"}
	starter := &fakeLoanStarter{fail: true}
	svc := service.NewPaymentService(store, gateway, starter)

	_, err := svc.Checkout(checkoutConPrestamo())
	require.NoError(t, err)

	_, err = svc.SessionStatus("cs_test_123")
	require.ErrorIs(t, err, service.ErrPagoNoConfirmado)

	assert.True(t, gateway.refundCalled, "el cobro ya hecho se reembolsa")
	assert.Equal(t, db.PagoCancelado, store.settled["cs_test_123"].estado)
}

func TestMarkRefunded(t *testing.T) {
	store := newFakePaymentStore()
	svc := service.NewPaymentService(store, &fakeStripeGateway{}, &fakeLoanStarter{})

	_, err := svc.Checkout(checkoutConPrestamo())
	require.NoError(t, err)

	require.NoError(t, svc.MarkRefunded("cs_test_123"))
	assert.Equal(t, db.PagoCancelado, store.settled["cs_test_123"].estado)
	assert.Empty(t, store.pendings)
}

func TestSummarize(t *testing.T) {
	payments := []entities.PaymentResponse{
		{Monto: decimal.NewFromInt(10), Estado: db.PagoCompletado},
		{Monto: decimal.NewFromInt(20), Estado: db.PagoCompletado},
		{Monto: decimal.NewFromInt(5), Estado: db.PagoFallido},
	}

	resumen := service.Summarize(payments)
	assert.Equal(t, 3, resumen.Total)
	assert.True(t, resumen.Monto.Equal(decimal.NewFromInt(35)))
	assert.True(t, resumen.Promedio.Equal(decimal.NewFromFloat(11.67)))
	assert.Equal(t, 2, resumen.PorEstado[db.PagoCompletado])
	assert.Equal(t, 1, resumen.PorEstado[db.PagoFallido])

	vacio := service.Summarize(nil)
	assert.Equal(t, 0, vacio.Total)
	assert.True(t, vacio.Promedio.IsZero())
}
