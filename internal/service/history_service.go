package service

import (
	"ecomove/internal/db"
	"ecomove/internal/entities"
	"strconv"
	"strings"
)

type LoanLister interface {
	List() ([]db.Loan, error)
	ListByUsuario(usuarioID int64) ([]db.Loan, error)
}

// HistoryService arma la vista de historial cruzando los préstamos con los
// datos de referencia de usuarios, transportes y estaciones.
type HistoryService struct {
	users      UserStore
	transports TransportAdminStore
	stations   StationAdminStore
	loans      LoanLister
}

func NewHistoryService(users UserStore, transports TransportAdminStore, stations StationAdminStore, loans LoanLister) *HistoryService {
	return &HistoryService{
		users:      users,
		transports: transports,
		stations:   stations,
		loans:      loans,
	}
}

func (s *HistoryService) History(filter entities.HistoryFilter) (*entities.HistoryResponse, error) {
	// Incluye usuarios dados de baja: sus préstamos viejos siguen apareciendo
	// en el historial con su nombre.
	users, err := s.users.List(false)
	if err != nil {
		return nil, err
	}
	transports, err := s.transports.List(false)
	if err != nil {
		return nil, err
	}
	stations, err := s.stations.List(false)
	if err != nil {
		return nil, err
	}

	var loans []db.Loan
	if filter.UsuarioID != 0 {
		loans, err = s.loans.ListByUsuario(filter.UsuarioID)
	} else {
		loans, err = s.loans.List()
	}
	if err != nil {
		return nil, err
	}

	views := BuildLoanViews(loans, users, transports, stations)
	views = FilterLoanViews(views, filter)
	summary := SummarizeLoans(views)
	return &entities.HistoryResponse{Prestamos: views, Resumen: summary}, nil
}

// BuildLoanViews cruza los préstamos contra mapas id→registro de las tres
// colecciones de referencia. Las referencias rotas se resuelven con textos de
// relleno en lugar de descartar el préstamo, igual que hacía la vista.
func BuildLoanViews(loans []db.Loan, users []db.User, transports []db.Transport, stations []db.Station) []entities.LoanView {
	userMap := make(map[int64]db.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	transportMap := make(map[int64]db.Transport, len(transports))
	for _, t := range transports {
		transportMap[t.ID] = t
	}
	stationMap := make(map[int64]db.Station, len(stations))
	for _, e := range stations {
		stationMap[e.ID] = e
	}

	views := make([]entities.LoanView, 0, len(loans))
	for _, l := range loans {
		view := entities.LoanView{
			ID:               l.ID,
			UsuarioID:        l.UsuarioID,
			UsuarioNombre:    "Usuario no encontrado",
			TransporteID:     l.TransporteID,
			TransporteTipo:   "Sin tipo",
			OrigenID:         l.EstacionOrigenID,
			OrigenUbicacion:  "Origen",
			DestinoID:        l.EstacionDestinoID,
			DestinoUbicacion: "Destino",
			Inicio:           l.Inicio,
			Fin:              l.Fin,
			Costo:            l.Costo,
			Estado:           l.Estado,
		}
		if u, ok := userMap[l.UsuarioID]; ok {
			view.UsuarioNombre = u.Nombre
		}
		if t, ok := transportMap[l.TransporteID]; ok {
			view.TransporteTipo = t.Tipo
		}
		if e, ok := stationMap[l.EstacionOrigenID]; ok {
			view.OrigenUbicacion = e.Ubicacion
		}
		if e, ok := stationMap[l.EstacionDestinoID]; ok {
			view.DestinoUbicacion = e.Ubicacion
		}
		views = append(views, view)
	}
	return views
}

// FilterLoanViews aplica usuario, búsqueda libre por id/nombre y rango de
// fechas sobre el inicio del préstamo.
func FilterLoanViews(views []entities.LoanView, filter entities.HistoryFilter) []entities.LoanView {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]entities.LoanView, 0, len(views))
	for _, v := range views {
		if filter.UsuarioID != 0 && v.UsuarioID != filter.UsuarioID {
			continue
		}
		if search != "" {
			id := strconv.FormatInt(v.ID, 10)
			if !strings.Contains(id, search) && !strings.Contains(strings.ToLower(v.UsuarioNombre), search) {
				continue
			}
		}
		if !filter.Desde.IsZero() && v.Inicio.Before(filter.Desde) {
			continue
		}
		if !filter.Hasta.IsZero() && v.Inicio.After(filter.Hasta) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// SummarizeLoans cuenta por estado sobre la colección ya filtrada.
func SummarizeLoans(views []entities.LoanView) entities.HistorySummary {
	summary := entities.HistorySummary{Total: len(views)}
	for _, v := range views {
		switch v.Estado {
		case db.PrestamoCompletado:
			summary.Completados++
		case db.PrestamoEnCurso:
			summary.EnCurso++
		case db.PrestamoCancelado:
			summary.Cancelados++
		case db.PrestamoPendiente:
			summary.Pendientes++
		}
	}
	return summary
}
