package db

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de transporte
const (
	TransporteDisponible      = "DISPONIBLE"
	TransporteEnUso           = "EN_USO"
	TransporteMantenimiento   = "MANTENIMIENTO"
	TransporteFueraDeServicio = "FUERA_DE_SERVICIO"
)

// Estados de préstamo
const (
	PrestamoPendiente  = "PENDIENTE"
	PrestamoEnCurso    = "EN_CURSO"
	PrestamoCompletado = "COMPLETADO"
	PrestamoCancelado  = "CANCELADO"
)

// Estados de pago
const (
	PagoPendiente  = "PENDIENTE"
	PagoCompletado = "COMPLETADO"
	PagoFallido    = "FALLIDO"
	PagoCancelado  = "CANCELADO"
)

// Estado de entidad (soft delete explícito)
const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// Tipos de usuario
const (
	TipoAdmin   = "ADMIN"
	TipoUsuario = "USUARIO"
)

type User struct {
	ID           int64
	Nombre       string
	Correo       string
	Documento    string
	Tipo         string
	Estado       string
	Eliminado    bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Station struct {
	ID          int64
	Ubicacion   string
	Capacidad   int
	Transportes []int64
	Estado      string
	Eliminado   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Transport struct {
	ID        int64
	Tipo      string
	Estado    string
	Eliminado bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Loan struct {
	ID                int64
	UsuarioID         int64
	TransporteID      int64
	EstacionOrigenID  int64
	EstacionDestinoID int64
	Inicio            time.Time
	Fin               time.Time
	Costo             decimal.Decimal
	Estado            string
	PagoID            sql.NullInt64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Payment struct {
	ID              int64
	PrestamoID      sql.NullInt64
	Monto           decimal.Decimal
	MetodoPago      string
	Estado          string
	FechaPago       time.Time
	StripeSessionID sql.NullString
	Referencia      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PendingLoan guarda el payload de un préstamo a la espera de la confirmación
// del pago en Stripe. Reemplaza al sessionStorage del dashboard.
type PendingLoan struct {
	StripeSessionID string
	Payload         []byte
	CreatedAt       time.Time
}
