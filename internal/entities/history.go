package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanView es el registro ya cruzado contra usuarios, transportes y
// estaciones que renderiza la vista de historial.
type LoanView struct {
	ID               int64           `json:"id"`
	UsuarioID        int64           `json:"usuarioId"`
	UsuarioNombre    string          `json:"usuarioNombre"`
	TransporteID     int64           `json:"transporteId"`
	TransporteTipo   string          `json:"transporteTipo"`
	OrigenID         int64           `json:"estacionOrigenId"`
	OrigenUbicacion  string          `json:"estacionOrigen"`
	DestinoID        int64           `json:"estacionDestinoId"`
	DestinoUbicacion string          `json:"estacionDestino"`
	Inicio           time.Time       `json:"inicio"`
	Fin              time.Time       `json:"fin"`
	Costo            decimal.Decimal `json:"costo"`
	Estado           string          `json:"estado"`
}

// HistoryFilter son los filtros del historial. Desde/Hasta acotan por la
// fecha de inicio del préstamo.
type HistoryFilter struct {
	UsuarioID int64
	Search    string
	Desde     time.Time
	Hasta     time.Time
}

type HistorySummary struct {
	Total       int `json:"total"`
	Completados int `json:"completados"`
	EnCurso     int `json:"enCurso"`
	Cancelados  int `json:"cancelados"`
	Pendientes  int `json:"pendientes"`
}

type HistoryResponse struct {
	Prestamos []LoanView     `json:"prestamos"`
	Resumen   HistorySummary `json:"resumen"`
}
