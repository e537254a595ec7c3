package repository

import (
	"database/sql"
	"ecomove/internal/db"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type StationRepository struct {
	DB *sql.DB
}

func NewStationRepository(database *sql.DB) *StationRepository {
	return &StationRepository{DB: database}
}

const stationColumns = `id, ubicacion, capacidad, transportes, estado, eliminado, created_at, updated_at`

func scanStation(row interface{ Scan(...interface{}) error }) (*db.Station, error) {
	var s db.Station
	err := row.Scan(&s.ID, &s.Ubicacion, &s.Capacidad, pq.Array(&s.Transportes),
		&s.Estado, &s.Eliminado, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StationRepository) Create(s *db.Station) error {
	query := `
		INSERT INTO estaciones (ubicacion, capacidad, transportes, estado, eliminado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, s.Ubicacion, s.Capacidad, pq.Array(s.Transportes), s.Estado, s.Eliminado).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creando estación: %w", err)
	}
	return nil
}

func (r *StationRepository) List(activeOnly bool) ([]db.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM estaciones`
	if activeOnly {
		query += ` WHERE NOT eliminado AND estado = '` + db.EstadoActivo + `'`
	}
	query += ` ORDER BY ubicacion`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listando estaciones: %w", err)
	}
	defer rows.Close()

	var stations []db.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *s)
	}
	return stations, rows.Err()
}

func (r *StationRepository) GetByID(id int64) (*db.Station, error) {
	row := r.DB.QueryRow(`SELECT `+stationColumns+` FROM estaciones WHERE id = $1`, id)
	s, err := scanStation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("estación %d no encontrada: %w", id, err)
		}
		return nil, fmt.Errorf("error consultando estación: %w", err)
	}
	return s, nil
}

func (r *StationRepository) Update(s *db.Station) error {
	query := `
		UPDATE estaciones
		SET ubicacion = $2, capacidad = $3, transportes = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRow(query, s.ID, s.Ubicacion, s.Capacidad, pq.Array(s.Transportes)).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("estación %d no encontrada: %w", s.ID, err)
		}
		return fmt.Errorf("error actualizando estación: %w", err)
	}
	return nil
}

func (r *StationRepository) SetEstado(id int64, estado string, eliminado bool) error {
	res, err := r.DB.Exec(`UPDATE estaciones SET estado = $2, eliminado = $3, updated_at = NOW() WHERE id = $1`,
		id, estado, eliminado)
	if err != nil {
		return fmt.Errorf("error cambiando estado de estación %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("estación %d no encontrada: %w", id, sql.ErrNoRows)
	}
	return nil
}

// AdjustCapacity suma delta a la capacidad sin dejarla negativa.
func (r *StationRepository) AdjustCapacity(id int64, delta int) error {
	res, err := r.DB.Exec(`
		UPDATE estaciones
		SET capacidad = capacidad + $2, updated_at = NOW()
		WHERE id = $1 AND capacidad + $2 >= 0`, id, delta)
	if err != nil {
		return fmt.Errorf("error ajustando capacidad de estación %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("estación %d sin capacidad para ajustar en %d", id, delta)
	}
	return nil
}

// AddTransport incrementa la capacidad en uno y agrega el transporte a la
// lista solo si aún no figura, para no duplicarlo en viajes de ida y vuelta.
func (r *StationRepository) AddTransport(stationID, transporteID int64) error {
	_, err := r.DB.Exec(`
		UPDATE estaciones
		SET capacidad = capacidad + 1,
		    transportes = CASE
		        WHEN $2 = ANY(transportes) THEN transportes
		        ELSE array_append(transportes, $2)
		    END,
		    updated_at = NOW()
		WHERE id = $1`, stationID, transporteID)
	if err != nil {
		return fmt.Errorf("error devolviendo transporte %d a estación %d: %w", transporteID, stationID, err)
	}
	return nil
}
