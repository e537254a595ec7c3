package entities

import "time"

type StationRequest struct {
	Ubicacion   string  `json:"ubicacion"`
	Capacidad   int     `json:"capacidad"`
	Transportes []int64 `json:"transportes"`
}

type StationResponse struct {
	ID          int64     `json:"id"`
	Ubicacion   string    `json:"ubicacion"`
	Capacidad   int       `json:"capacidad"`
	Transportes []int64   `json:"transportes"`
	Estado      string    `json:"estado"`
	Eliminado   bool      `json:"eliminado"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
