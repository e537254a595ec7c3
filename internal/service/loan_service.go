package service

import (
	"database/sql"
	"ecomove/internal/db"
	"ecomove/internal/entities"
	httperrors "ecomove/internal/errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// Stores que necesita el orquestador de préstamos. Los repositorios de
// Postgres los implementan; los tests usan dobles en memoria.
type TransportStore interface {
	GetByID(id int64) (*db.Transport, error)
	UpdateEstado(id int64, estado string) error
}

type StationStore interface {
	GetByID(id int64) (*db.Station, error)
	AdjustCapacity(id int64, delta int) error
	AddTransport(stationID, transporteID int64) error
}

type LoanStore interface {
	Create(l *db.Loan) error
	GetByID(id int64) (*db.Loan, error)
	ListByUsuario(usuarioID int64) ([]db.Loan, error)
	Finish(id int64, estado string) error
}

// LoanNotifier avisa al usuario cuando su préstamo arranca o termina.
// Puede ser nil.
type LoanNotifier interface {
	NotifyLoan(loan *db.Loan, estado string)
}

// LoanService orquesta el ciclo de vida del préstamo: valida contra los datos
// de referencia antes de tocar nada y deshace los pasos previos cuando un
// paso intermedio falla.
type LoanService struct {
	transports TransportStore
	stations   StationStore
	loans      LoanStore
	notifier   LoanNotifier
}

func NewLoanService(transports TransportStore, stations StationStore, loans LoanStore, notifier LoanNotifier) *LoanService {
	return &LoanService{
		transports: transports,
		stations:   stations,
		loans:      loans,
		notifier:   notifier,
	}
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func validateLoanRequest(req *entities.LoanRequest) error {
	if req.UsuarioID == 0 || req.TransporteID == 0 || req.EstacionOrigenID == 0 || req.EstacionDestinoID == 0 {
		return httperrors.BadRequest("usuario, transporte y estaciones son requeridos")
	}
	if !req.Fin.After(req.Inicio) {
		return httperrors.BadRequest("fin debe ser posterior a inicio")
	}
	if req.Costo.LessThan(decimal.Zero) {
		return httperrors.BadRequest("el costo debe ser mayor o igual a 0")
	}
	return nil
}

// StartLoan ejecuta la secuencia de inicio: transporte a EN_USO, capacidad de
// la estación origen -1 y alta del préstamo EN_CURSO, en ese orden. Las
// reglas de negocio se rechazan antes de la primera mutación.
func (s *LoanService) StartLoan(req *entities.LoanRequest) (*db.Loan, error) {
	if err := validateLoanRequest(req); err != nil {
		return nil, err
	}

	origen, err := s.stations.GetByID(req.EstacionOrigenID)
	if err != nil {
		return nil, err
	}
	if !contains(origen.Transportes, req.TransporteID) {
		return nil, ErrTransporteNoEnEstacion
	}
	if origen.Capacidad <= 0 {
		return nil, ErrEstacionSinCapacidad
	}
	if _, err := s.stations.GetByID(req.EstacionDestinoID); err != nil {
		return nil, err
	}

	transporte, err := s.transports.GetByID(req.TransporteID)
	if err != nil {
		return nil, err
	}
	if transporte.Eliminado || transporte.Estado != db.TransporteDisponible {
		return nil, ErrTransporteNoDisponible
	}

	if err := s.transports.UpdateEstado(req.TransporteID, db.TransporteEnUso); err != nil {
		return nil, fmt.Errorf("error marcando transporte en uso: %w", err)
	}

	if err := s.stations.AdjustCapacity(req.EstacionOrigenID, -1); err != nil {
		s.compensateTransport(req.TransporteID)
		return nil, fmt.Errorf("error descontando capacidad de la estación origen: %w", err)
	}

	loan := &db.Loan{
		UsuarioID:         req.UsuarioID,
		TransporteID:      req.TransporteID,
		EstacionOrigenID:  req.EstacionOrigenID,
		EstacionDestinoID: req.EstacionDestinoID,
		Inicio:            req.Inicio,
		Fin:               req.Fin,
		Costo:             req.Costo,
		Estado:            db.PrestamoEnCurso,
	}
	if req.PagoID != nil {
		loan.PagoID = sql.NullInt64{Int64: *req.PagoID, Valid: true}
	}
	if err := s.loans.Create(loan); err != nil {
		s.compensateCapacity(req.EstacionOrigenID)
		s.compensateTransport(req.TransporteID)
		return nil, fmt.Errorf("error creando préstamo: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyLoan(loan, db.PrestamoEnCurso)
	}
	return loan, nil
}

// FinishLoan libera el transporte y lo devuelve a la estación destino.
// Si el transporte ya está DISPONIBLE la operación es un no-op con aviso,
// para no incrementar la capacidad dos veces.
func (s *LoanService) FinishLoan(id int64) (*db.Loan, error) {
	loan, err := s.loans.GetByID(id)
	if err != nil {
		return nil, err
	}

	transporte, err := s.transports.GetByID(loan.TransporteID)
	if err != nil {
		return nil, err
	}
	if transporte.Estado == db.TransporteDisponible {
		return nil, ErrPrestamoYaFinalizado
	}

	if err := s.transports.UpdateEstado(loan.TransporteID, db.TransporteDisponible); err != nil {
		return nil, fmt.Errorf("error liberando transporte: %w", err)
	}

	if err := s.stations.AddTransport(loan.EstacionDestinoID, loan.TransporteID); err != nil {
		if errComp := s.transports.UpdateEstado(loan.TransporteID, db.TransporteEnUso); errComp != nil {
			log.Printf("ALERTA: no se pudo revertir el estado del transporte %d: %v", loan.TransporteID, errComp)
		}
		return nil, fmt.Errorf("error devolviendo transporte a estación destino: %w", err)
	}

	if err := s.loans.Finish(id, db.PrestamoCompletado); err != nil {
		// El transporte ya volvió a la estación; el job de vencidos cierra el
		// préstamo en la próxima pasada.
		log.Printf("ALERTA: préstamo %d quedó EN_CURSO con el transporte ya devuelto: %v", id, err)
		return nil, fmt.Errorf("error cerrando préstamo %d: %w", id, err)
	}
	loan.Estado = db.PrestamoCompletado

	if s.notifier != nil {
		s.notifier.NotifyLoan(loan, db.PrestamoCompletado)
	}
	return loan, nil
}

// HistoryByUsuario devuelve los préstamos de un usuario, más reciente primero.
func (s *LoanService) HistoryByUsuario(usuarioID int64) ([]db.Loan, error) {
	return s.loans.ListByUsuario(usuarioID)
}

func (s *LoanService) GetLoan(id int64) (*db.Loan, error) {
	return s.loans.GetByID(id)
}

func (s *LoanService) compensateTransport(transporteID int64) {
	if err := s.transports.UpdateEstado(transporteID, db.TransporteDisponible); err != nil {
		log.Printf("ALERTA: no se pudo revertir el estado del transporte %d: %v", transporteID, err)
	}
}

func (s *LoanService) compensateCapacity(estacionID int64) {
	if err := s.stations.AdjustCapacity(estacionID, 1); err != nil {
		log.Printf("ALERTA: no se pudo restaurar la capacidad de la estación %d: %v", estacionID, err)
	}
}
