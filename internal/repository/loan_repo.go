package repository

import (
	"database/sql"
	"ecomove/internal/db"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type LoanRepository struct {
	DB *sql.DB
}

func NewLoanRepository(database *sql.DB) *LoanRepository {
	return &LoanRepository{DB: database}
}

const loanColumns = `id, usuario_id, transporte_id, estacion_origen_id, estacion_destino_id,
	inicio, fin, costo, estado, pago_id, created_at, updated_at`

func scanLoan(row interface{ Scan(...interface{}) error }) (*db.Loan, error) {
	var l db.Loan
	err := row.Scan(&l.ID, &l.UsuarioID, &l.TransporteID, &l.EstacionOrigenID, &l.EstacionDestinoID,
		&l.Inicio, &l.Fin, &l.Costo, &l.Estado, &l.PagoID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepository) Create(l *db.Loan) error {
	query := `
		INSERT INTO prestamos
		(usuario_id, transporte_id, estacion_origen_id, estacion_destino_id, inicio, fin, costo, estado, pago_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		l.UsuarioID, l.TransporteID, l.EstacionOrigenID, l.EstacionDestinoID,
		l.Inicio, l.Fin, l.Costo, l.Estado, l.PagoID,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creando préstamo: %w", err)
	}
	return nil
}

func (r *LoanRepository) GetByID(id int64) (*db.Loan, error) {
	row := r.DB.QueryRow(`SELECT `+loanColumns+` FROM prestamos WHERE id = $1`, id)
	l, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("préstamo %d no encontrado: %w", id, err)
		}
		return nil, fmt.Errorf("error consultando préstamo: %w", err)
	}
	return l, nil
}

func (r *LoanRepository) ListByUsuario(usuarioID int64) ([]db.Loan, error) {
	rows, err := r.DB.Query(`SELECT `+loanColumns+` FROM prestamos WHERE usuario_id = $1 ORDER BY inicio DESC`, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("error listando préstamos del usuario %d: %w", usuarioID, err)
	}
	return collectLoans(rows)
}

func (r *LoanRepository) List() ([]db.Loan, error) {
	rows, err := r.DB.Query(`SELECT ` + loanColumns + ` FROM prestamos ORDER BY inicio DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listando préstamos: %w", err)
	}
	return collectLoans(rows)
}

func collectLoans(rows *sql.Rows) ([]db.Loan, error) {
	defer rows.Close()
	var loans []db.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

// Finish marca el préstamo como concluido con el estado dado.
func (r *LoanRepository) Finish(id int64, estado string) error {
	res, err := r.DB.Exec(`UPDATE prestamos SET estado = $2, updated_at = NOW() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("error finalizando préstamo %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("préstamo %d no encontrado: %w", id, sql.ErrNoRows)
	}
	return nil
}

// GetEnCursoPastFin busca préstamos en curso cuya fecha de fin ya pasó, para
// el job que los cierra.
func (r *LoanRepository) GetEnCursoPastFin() ([]int64, error) {
	rows, err := r.DB.Query(`SELECT id FROM prestamos WHERE estado = $1 AND fin < NOW()`, db.PrestamoEnCurso)
	if err != nil {
		return nil, fmt.Errorf("error buscando préstamos vencidos: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error leyendo id de préstamo: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateEstados cambia en bloque el estado de una lista de préstamos.
func (r *LoanRepository) UpdateEstados(ids []int64, estado string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(`UPDATE prestamos SET estado = $1, updated_at = NOW() WHERE id = ANY($2)`,
		estado, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error actualizando estados de préstamos: %w", err)
	}
	return nil
}
