package repository

import (
	"database/sql"
	"ecomove/internal/db"
	"errors"
	"fmt"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

const userColumns = `id, nombre, correo, documento, tipo, estado, eliminado, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.Nombre, &u.Correo, &u.Documento, &u.Tipo, &u.Estado,
		&u.Eliminado, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *db.User) error {
	query := `
		INSERT INTO usuarios (nombre, correo, documento, tipo, estado, eliminado, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, u.Nombre, u.Correo, u.Documento, u.Tipo, u.Estado, u.Eliminado, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creando usuario: %w", err)
	}
	return nil
}

// List devuelve todos los usuarios; con activeOnly excluye los dados de baja.
func (r *UserRepository) List(activeOnly bool) ([]db.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios`
	if activeOnly {
		query += ` WHERE NOT eliminado AND estado = '` + db.EstadoActivo + `'`
	}
	query += ` ORDER BY nombre`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listando usuarios: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByID(id int64) (*db.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("usuario %d no encontrado: %w", id, err)
		}
		return nil, fmt.Errorf("error consultando usuario: %w", err)
	}
	return u, nil
}

// GetActiveByCorreo resuelve el usuario para el login. Devuelve nil sin error
// cuando no existe, igual que el repo de admins del que deriva.
func (r *UserRepository) GetActiveByCorreo(correo string) (*db.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM usuarios
		WHERE correo = $1 AND NOT eliminado AND estado = $2`, correo, db.EstadoActivo)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error consultando usuario por correo: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Update(u *db.User) error {
	query := `
		UPDATE usuarios
		SET nombre = $2, correo = $3, documento = $4, tipo = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRow(query, u.ID, u.Nombre, u.Correo, u.Documento, u.Tipo).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("usuario %d no encontrado: %w", u.ID, err)
		}
		return fmt.Errorf("error actualizando usuario: %w", err)
	}
	return nil
}

// SetEstado es la única operación de baja/alta: no se reenvía el registro
// completo, solo cambia el estado y la marca eliminado.
func (r *UserRepository) SetEstado(id int64, estado string, eliminado bool) error {
	res, err := r.DB.Exec(`UPDATE usuarios SET estado = $2, eliminado = $3, updated_at = NOW() WHERE id = $1`,
		id, estado, eliminado)
	if err != nil {
		return fmt.Errorf("error cambiando estado de usuario %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("usuario %d no encontrado: %w", id, sql.ErrNoRows)
	}
	return nil
}
