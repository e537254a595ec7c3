package entities

import "time"

type UserRequest struct {
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
	Documento string `json:"documento"`
	Tipo      string `json:"tipo"`
	Password  string `json:"password,omitempty"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Correo    string    `json:"correo"`
	Documento string    `json:"documento"`
	Tipo      string    `json:"tipo"`
	Estado    string    `json:"estado"`
	Eliminado bool      `json:"eliminado"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// LoginResponse es el contrato que espera el dashboard:
// { token, userId, nombre, correo, tipo }
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Tipo   string `json:"tipo"`
}
