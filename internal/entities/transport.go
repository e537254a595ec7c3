package entities

import "time"

type TransportRequest struct {
	Tipo   string `json:"tipo"`
	Estado string `json:"estado"`
}

type TransportResponse struct {
	ID        int64     `json:"id"`
	Tipo      string    `json:"tipo"`
	Estado    string    `json:"estado"`
	Eliminado bool      `json:"eliminado"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
