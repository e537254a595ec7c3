package repository

import (
	"database/sql"
	"ecomove/internal/db"
	"errors"
	"fmt"
	"time"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

const paymentColumns = `id, prestamo_id, monto, metodo_pago, estado, fecha_pago,
	stripe_session_id, referencia, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*db.Payment, error) {
	var p db.Payment
	err := row.Scan(&p.ID, &p.PrestamoID, &p.Monto, &p.MetodoPago, &p.Estado, &p.FechaPago,
		&p.StripeSessionID, &p.Referencia, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Create(p *db.Payment) error {
	query := `
		INSERT INTO pagos (prestamo_id, monto, metodo_pago, estado, fecha_pago, stripe_session_id, referencia)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, p.PrestamoID, p.Monto, p.MetodoPago, p.Estado, p.FechaPago,
		p.StripeSessionID, p.Referencia).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creando pago: %w", err)
	}
	return nil
}

func (r *PaymentRepository) List() ([]db.Payment, error) {
	rows, err := r.DB.Query(`SELECT ` + paymentColumns + ` FROM pagos ORDER BY fecha_pago DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listando pagos: %w", err)
	}
	defer rows.Close()

	var payments []db.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) GetByID(id int64) (*db.Payment, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+` FROM pagos WHERE id = $1`, id)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pago %d no encontrado: %w", id, err)
		}
		return nil, fmt.Errorf("error consultando pago: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) GetByStripeSessionID(sessionID string) (*db.Payment, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+` FROM pagos WHERE stripe_session_id = $1`, sessionID)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pago de sesión %s no encontrado: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error consultando pago por sesión: %w", err)
	}
	return p, nil
}

// SettleBySession cierra el pago de una sesión de Stripe: estado final,
// préstamo asociado (si lo hay) y fecha de pago.
func (r *PaymentRepository) SettleBySession(sessionID, estado string, prestamoID *int64) error {
	var pid sql.NullInt64
	if prestamoID != nil {
		pid = sql.NullInt64{Int64: *prestamoID, Valid: true}
	}
	_, err := r.DB.Exec(`
		UPDATE pagos
		SET estado = $2, prestamo_id = COALESCE($3, prestamo_id), fecha_pago = NOW(), updated_at = NOW()
		WHERE stripe_session_id = $1`, sessionID, estado, pid)
	if err != nil {
		return fmt.Errorf("error cerrando pago de sesión %s: %w", sessionID, err)
	}
	return nil
}

// SavePending guarda el payload del préstamo pendiente de pago, clave por
// sesión de Stripe.
func (r *PaymentRepository) SavePending(sessionID string, payload []byte) error {
	_, err := r.DB.Exec(`
		INSERT INTO prestamos_pendientes (stripe_session_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (stripe_session_id) DO UPDATE SET payload = EXCLUDED.payload`,
		sessionID, payload)
	if err != nil {
		return fmt.Errorf("error guardando préstamo pendiente: %w", err)
	}
	return nil
}

// TakePending borra y devuelve el payload pendiente en un solo paso, para que
// una sesión pagada cree exactamente un préstamo aunque el callback y el
// webhook lleguen a la vez.
func (r *PaymentRepository) TakePending(sessionID string) ([]byte, bool, error) {
	var payload []byte
	err := r.DB.QueryRow(`
		DELETE FROM prestamos_pendientes WHERE stripe_session_id = $1 RETURNING payload`,
		sessionID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error retirando préstamo pendiente: %w", err)
	}
	return payload, true, nil
}

// DeletePendingOlderThan purga payloads pendientes abandonados.
func (r *PaymentRepository) DeletePendingOlderThan(before time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM prestamos_pendientes WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error purgando préstamos pendientes: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
