package service

import (
	"ecomove/internal/db"
	"ecomove/internal/entities"
	"ecomove/internal/utils"
	"fmt"
)

type TransportAdminStore interface {
	Create(t *db.Transport) error
	List(activeOnly bool) ([]db.Transport, error)
	GetByID(id int64) (*db.Transport, error)
	Update(t *db.Transport) error
	SetEliminado(id int64, estado string, eliminado bool) error
}

type TransportService struct {
	transports TransportAdminStore
}

func NewTransportService(transports TransportAdminStore) *TransportService {
	return &TransportService{transports: transports}
}

func transportResponse(t *db.Transport) *entities.TransportResponse {
	return &entities.TransportResponse{
		ID:        t.ID,
		Tipo:      t.Tipo,
		Estado:    t.Estado,
		Eliminado: t.Eliminado,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (s *TransportService) Create(req *entities.TransportRequest) (*entities.TransportResponse, error) {
	tipo, err := utils.NormalizeTransportTipo(req.Tipo)
	if err != nil {
		return nil, err
	}
	estado := req.Estado
	if estado == "" {
		estado = db.TransporteDisponible
	}
	if !utils.ValidTransportEstado(estado) {
		return nil, fmt.Errorf("estado de transporte no soportado: %s", estado)
	}
	transport := &db.Transport{Tipo: tipo, Estado: estado}
	if err := s.transports.Create(transport); err != nil {
		return nil, err
	}
	return transportResponse(transport), nil
}

func (s *TransportService) List() ([]entities.TransportResponse, error) {
	transports, err := s.transports.List(true)
	if err != nil {
		return nil, err
	}
	out := make([]entities.TransportResponse, 0, len(transports))
	for i := range transports {
		out = append(out, *transportResponse(&transports[i]))
	}
	return out, nil
}

func (s *TransportService) GetByID(id int64) (*entities.TransportResponse, error) {
	transport, err := s.transports.GetByID(id)
	if err != nil {
		return nil, err
	}
	return transportResponse(transport), nil
}

func (s *TransportService) Update(id int64, req *entities.TransportRequest) (*entities.TransportResponse, error) {
	transport, err := s.transports.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Tipo != "" {
		tipo, err := utils.NormalizeTransportTipo(req.Tipo)
		if err != nil {
			return nil, err
		}
		transport.Tipo = tipo
	}
	if req.Estado != "" {
		if !utils.ValidTransportEstado(req.Estado) {
			return nil, fmt.Errorf("estado de transporte no soportado: %s", req.Estado)
		}
		transport.Estado = req.Estado
	}
	if err := s.transports.Update(transport); err != nil {
		return nil, err
	}
	return transportResponse(transport), nil
}

// Deactivate saca el transporte de servicio; deja de aparecer en los listados
// activos pero sigue consultable por id.
func (s *TransportService) Deactivate(id int64) error {
	return s.transports.SetEliminado(id, db.TransporteFueraDeServicio, true)
}
