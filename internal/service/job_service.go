package service

import (
	"ecomove/internal/db"
	"errors"
	"log"
	"os"
	"time"
)

// OverdueLoanStore expone lo que necesita el job de cierre automático.
type OverdueLoanStore interface {
	GetEnCursoPastFin() ([]int64, error)
	UpdateEstados(ids []int64, estado string) error
}

// PendingPurger limpia payloads de pago abandonados.
type PendingPurger interface {
	DeletePendingOlderThan(before time.Time) (int64, error)
}

// JobService agrupa las tareas programadas del cron.
type JobService struct {
	loans      OverdueLoanStore
	finisher   *LoanService
	pendings   PendingPurger
	adminPhone string
}

func NewJobService(loans OverdueLoanStore, finisher *LoanService, pendings PendingPurger) *JobService {
	return &JobService{
		loans:      loans,
		finisher:   finisher,
		pendings:   pendings,
		adminPhone: os.Getenv("ADMIN_ALERT_PHONE"),
	}
}

// FinishOverdueLoans cierra los préstamos cuya fecha de fin ya pasó y el
// operador no finalizó a mano. Intenta el cierre completo (devolver el
// transporte a la estación destino); si falla, marca el préstamo igual para
// que no quede EN_CURSO para siempre.
func (j *JobService) FinishOverdueLoans() {
	ids, err := j.loans.GetEnCursoPastFin()
	if err != nil {
		log.Printf("Cron Job: error buscando préstamos vencidos: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	log.Printf("Cron Job: %d préstamos vencidos por finalizar", len(ids))

	// pendientes: el transporte ya volvió a la estación pero el préstamo quedó
	// EN_CURSO por una finalización a medias; solo falta cerrarlo.
	var pendientes, failed []int64
	for _, id := range ids {
		if _, err := j.finisher.FinishLoan(id); err != nil {
			if errors.Is(err, ErrPrestamoYaFinalizado) {
				pendientes = append(pendientes, id)
				continue
			}
			log.Printf("Cron Job: no se pudo finalizar el préstamo %d: %v", id, err)
			failed = append(failed, id)
		}
	}

	if cerrar := append(pendientes, failed...); len(cerrar) > 0 {
		if err := j.loans.UpdateEstados(cerrar, db.PrestamoCompletado); err != nil {
			log.Printf("ALERTA: Cron Job: cierre forzado de préstamos %v falló: %v", cerrar, err)
			return
		}
		log.Printf("Cron Job: %d préstamos cerrados de forma forzada", len(cerrar))
	}
	if len(failed) > 0 {
		log.Printf("Cron Job: revisar el estado de los transportes de los préstamos %v", failed)
		j.alertAdmin(failed)
	}
}

// PurgeStalePendingLoans borra payloads de checkout que nunca se confirmaron.
func (j *JobService) PurgeStalePendingLoans() {
	deleted, err := j.pendings.DeletePendingOlderThan(time.Now().Add(-24 * time.Hour))
	if err != nil {
		log.Printf("Cron Job: error purgando pagos pendientes: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Cron Job: %d pagos pendientes purgados", deleted)
	}
}

func (j *JobService) alertAdmin(ids []int64) {
	if j.adminPhone == "" {
		return
	}
	msg := "EcoMove: préstamos cerrados de forma forzada, revisar estado de transportes."
	go func() {
		if err := SendSMS(j.adminPhone, msg); err != nil {
			log.Printf("ALERTA (asíncrono): SMS al administrador falló (préstamos %v): %v", ids, err)
		}
	}()
}
