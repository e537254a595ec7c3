package repository

import (
	"database/sql"
	"ecomove/internal/db"
	"errors"
	"fmt"
)

type TransportRepository struct {
	DB *sql.DB
}

func NewTransportRepository(database *sql.DB) *TransportRepository {
	return &TransportRepository{DB: database}
}

const transportColumns = `id, tipo, estado, eliminado, created_at, updated_at`

func scanTransport(row interface{ Scan(...interface{}) error }) (*db.Transport, error) {
	var t db.Transport
	err := row.Scan(&t.ID, &t.Tipo, &t.Estado, &t.Eliminado, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransportRepository) Create(t *db.Transport) error {
	query := `
		INSERT INTO transportes (tipo, estado, eliminado)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, t.Tipo, t.Estado, t.Eliminado).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creando transporte: %w", err)
	}
	return nil
}

func (r *TransportRepository) List(activeOnly bool) ([]db.Transport, error) {
	query := `SELECT ` + transportColumns + ` FROM transportes`
	if activeOnly {
		query += ` WHERE NOT eliminado AND estado <> '` + db.TransporteFueraDeServicio + `'`
	}
	query += ` ORDER BY id`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listando transportes: %w", err)
	}
	defer rows.Close()

	var transports []db.Transport
	for rows.Next() {
		t, err := scanTransport(rows)
		if err != nil {
			return nil, err
		}
		transports = append(transports, *t)
	}
	return transports, rows.Err()
}

func (r *TransportRepository) GetByID(id int64) (*db.Transport, error) {
	row := r.DB.QueryRow(`SELECT `+transportColumns+` FROM transportes WHERE id = $1`, id)
	t, err := scanTransport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transporte %d no encontrado: %w", id, err)
		}
		return nil, fmt.Errorf("error consultando transporte: %w", err)
	}
	return t, nil
}

func (r *TransportRepository) Update(t *db.Transport) error {
	query := `
		UPDATE transportes
		SET tipo = $2, estado = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRow(query, t.ID, t.Tipo, t.Estado).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transporte %d no encontrado: %w", t.ID, err)
		}
		return fmt.Errorf("error actualizando transporte: %w", err)
	}
	return nil
}

func (r *TransportRepository) UpdateEstado(id int64, estado string) error {
	res, err := r.DB.Exec(`UPDATE transportes SET estado = $2, updated_at = NOW() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("error cambiando estado de transporte %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transporte %d no encontrado: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *TransportRepository) SetEliminado(id int64, estado string, eliminado bool) error {
	res, err := r.DB.Exec(`UPDATE transportes SET estado = $2, eliminado = $3, updated_at = NOW() WHERE id = $1`,
		id, estado, eliminado)
	if err != nil {
		return fmt.Errorf("error dando de baja transporte %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transporte %d no encontrado: %w", id, sql.ErrNoRows)
	}
	return nil
}
