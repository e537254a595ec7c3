package service

import (
	"ecomove/internal/db"
	"ecomove/internal/entities"
	"fmt"
)

type StationAdminStore interface {
	Create(s *db.Station) error
	List(activeOnly bool) ([]db.Station, error)
	GetByID(id int64) (*db.Station, error)
	Update(s *db.Station) error
	SetEstado(id int64, estado string, eliminado bool) error
}

type StationService struct {
	stations StationAdminStore
}

func NewStationService(stations StationAdminStore) *StationService {
	return &StationService{stations: stations}
}

func stationResponse(s *db.Station) *entities.StationResponse {
	transportes := s.Transportes
	if transportes == nil {
		transportes = []int64{}
	}
	return &entities.StationResponse{
		ID:          s.ID,
		Ubicacion:   s.Ubicacion,
		Capacidad:   s.Capacidad,
		Transportes: transportes,
		Estado:      s.Estado,
		Eliminado:   s.Eliminado,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (s *StationService) Create(req *entities.StationRequest) (*entities.StationResponse, error) {
	if req.Ubicacion == "" {
		return nil, fmt.Errorf("la ubicación es requerida")
	}
	if req.Capacidad <= 0 {
		return nil, fmt.Errorf("la capacidad debe ser mayor a 0")
	}
	station := &db.Station{
		Ubicacion:   req.Ubicacion,
		Capacidad:   req.Capacidad,
		Transportes: req.Transportes,
		Estado:      db.EstadoActivo,
	}
	if station.Transportes == nil {
		station.Transportes = []int64{}
	}
	if err := s.stations.Create(station); err != nil {
		return nil, err
	}
	return stationResponse(station), nil
}

func (s *StationService) List() ([]entities.StationResponse, error) {
	stations, err := s.stations.List(true)
	if err != nil {
		return nil, err
	}
	out := make([]entities.StationResponse, 0, len(stations))
	for i := range stations {
		out = append(out, *stationResponse(&stations[i]))
	}
	return out, nil
}

func (s *StationService) GetByID(id int64) (*entities.StationResponse, error) {
	station, err := s.stations.GetByID(id)
	if err != nil {
		return nil, err
	}
	return stationResponse(station), nil
}

func (s *StationService) Update(id int64, req *entities.StationRequest) (*entities.StationResponse, error) {
	station, err := s.stations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Ubicacion != "" {
		station.Ubicacion = req.Ubicacion
	}
	if req.Capacidad > 0 {
		station.Capacidad = req.Capacidad
	}
	if req.Transportes != nil {
		station.Transportes = req.Transportes
	}
	if err := s.stations.Update(station); err != nil {
		return nil, err
	}
	return stationResponse(station), nil
}

func (s *StationService) Deactivate(id int64) error {
	return s.stations.SetEstado(id, db.EstadoInactivo, true)
}
