package service

import (
	"ecomove/internal/db"
	"fmt"
	"log"
)

// SenderService arma y despacha las notificaciones de préstamos. Implementa
// LoanNotifier; el envío es asíncrono para no demorar la respuesta HTTP.
type SenderService struct {
	users    UserStore
	stations StationAdminStore
}

func NewSenderService(users UserStore, stations StationAdminStore) *SenderService {
	return &SenderService{users: users, stations: stations}
}

func (s *SenderService) NotifyLoan(loan *db.Loan, estado string) {
	user, err := s.users.GetByID(loan.UsuarioID)
	if err != nil {
		log.Printf("ALERTA: no se pudo resolver el usuario %d para notificar el préstamo %d: %v",
			loan.UsuarioID, loan.ID, err)
		return
	}

	var accion, estacion string
	switch estado {
	case db.PrestamoEnCurso:
		accion = "comenzó"
		estacion = s.ubicacion(loan.EstacionOrigenID)
	case db.PrestamoCompletado:
		accion = "finalizó"
		estacion = s.ubicacion(loan.EstacionDestinoID)
	default:
		accion = "cambió de estado"
		estacion = s.ubicacion(loan.EstacionOrigenID)
	}

	subject := fmt.Sprintf("Tu préstamo EcoMove #%d %s", loan.ID, accion)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu préstamo #%d %s.\n\n"+
			"Estación: %s\n"+
			"Inicio: %s\n"+
			"Fin: %s\n"+
			"Costo: $%s\n\n"+
			"Gracias por moverte en verde.\n\nEcoMove.",
		user.Nombre, loan.ID, accion, estacion,
		loan.Inicio.Format("02 Jan 2006 15:04"),
		loan.Fin.Format("02 Jan 2006 15:04"),
		loan.Costo.StringFixed(2),
	)

	go func(correo, nombre, subject, body string, loanID int64) {
		if err := SendEmailWithSendGrid(correo, nombre, subject, body, ""); err != nil {
			log.Printf("ALERTA (asíncrono): falló el correo del préstamo %d: %v", loanID, err)
		}
	}(user.Correo, user.Nombre, subject, body, loan.ID)
}

func (s *SenderService) ubicacion(estacionID int64) string {
	station, err := s.stations.GetByID(estacionID)
	if err != nil {
		return "No disponible"
	}
	return station.Ubicacion
}
