package service_test

import (
	"testing"
	"time"

	"ecomove/internal/db"
	"ecomove/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Dobles en memoria ───────────────────────────────────────────────────────

// fakeOverdueStore delega en el fakeLoanStore para que el cierre forzado
// se vea reflejado en los mismos préstamos que manipula el LoanService.
type fakeOverdueStore struct {
	loans   *fakeLoanStore
	vencido time.Time
}

func (f *fakeOverdueStore) GetEnCursoPastFin() ([]int64, error) {
	var ids []int64
	for id, l := range f.loans.loans {
		if l.Estado == db.PrestamoEnCurso && l.Fin.Before(f.vencido) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeOverdueStore) UpdateEstados(ids []int64, estado string) error {
	for _, id := range ids {
		if l, ok := f.loans.loans[id]; ok {
			l.Estado = estado
		}
	}
	return nil
}

type fakePendingPurger struct {
	before  time.Time
	deleted int64
}

func (f *fakePendingPurger) DeletePendingOlderThan(before time.Time) (int64, error) {
	f.before = before
	return f.deleted, nil
}

// ─── FinishOverdueLoans ─────────────────────────────────────────────────────

func TestFinishOverdueLoansCierraVencidos(t *testing.T) {
	transports, stations, loanStore, svc := newLoanFixture()

	loan, err := svc.StartLoan(validRequest())
	require.NoError(t, err)

	overdue := &fakeOverdueStore{loans: loanStore, vencido: loan.Fin.Add(time.Hour)}
	job := service.NewJobService(overdue, svc, &fakePendingPurger{})

	job.FinishOverdueLoans()

	assert.Equal(t, db.PrestamoCompletado, loanStore.loans[loan.ID].Estado)
	assert.Equal(t, db.TransporteDisponible, transports.transports[10].Estado)
	assert.Equal(t, 6, stations.stations[2].Capacidad, "el transporte vuelve a la estación destino")
}

// Una finalización a medias deja el transporte DISPONIBLE con el préstamo
// todavía EN_CURSO; el job debe cerrarlo igual en la siguiente pasada.
func TestFinishOverdueLoansCierraPrestamoConTransporteDevuelto(t *testing.T) {
	transports, stations, loanStore, svc := newLoanFixture()

	loan, err := svc.StartLoan(validRequest())
	require.NoError(t, err)

	// Reproduce el estado a medias: transporte devuelto, préstamo sin cerrar.
	transports.transports[10].Estado = db.TransporteDisponible
	stations.stations[2].Capacidad++
	require.Equal(t, db.PrestamoEnCurso, loanStore.loans[loan.ID].Estado)

	overdue := &fakeOverdueStore{loans: loanStore, vencido: loan.Fin.Add(time.Hour)}
	job := service.NewJobService(overdue, svc, &fakePendingPurger{})

	job.FinishOverdueLoans()

	assert.Equal(t, db.PrestamoCompletado, loanStore.loans[loan.ID].Estado)
	assert.Equal(t, 6, stations.stations[2].Capacidad, "la capacidad del destino no se incrementa dos veces")
}

func TestFinishOverdueLoansFuerzaCierreSiFallaLaDevolucion(t *testing.T) {
	_, stations, loanStore, svc := newLoanFixture()

	loan, err := svc.StartLoan(validRequest())
	require.NoError(t, err)
	stations.failAdd = true

	overdue := &fakeOverdueStore{loans: loanStore, vencido: loan.Fin.Add(time.Hour)}
	job := service.NewJobService(overdue, svc, &fakePendingPurger{})

	job.FinishOverdueLoans()

	// Aunque la devolución a la estación falló, el préstamo no queda colgado.
	assert.Equal(t, db.PrestamoCompletado, loanStore.loans[loan.ID].Estado)
}

func TestFinishOverdueLoansSinVencidos(t *testing.T) {
	_, _, loanStore, svc := newLoanFixture()

	loan, err := svc.StartLoan(validRequest())
	require.NoError(t, err)

	// Ventana anterior al fin del préstamo: nada que cerrar.
	overdue := &fakeOverdueStore{loans: loanStore, vencido: loan.Inicio}
	job := service.NewJobService(overdue, svc, &fakePendingPurger{})

	job.FinishOverdueLoans()

	assert.Equal(t, db.PrestamoEnCurso, loanStore.loans[loan.ID].Estado)
}

// ─── PurgeStalePendingLoans ─────────────────────────────────────────────────

func TestPurgeStalePendingLoans(t *testing.T) {
	_, _, loanStore, svc := newLoanFixture()
	purger := &fakePendingPurger{deleted: 3}

	overdue := &fakeOverdueStore{loans: loanStore}
	job := service.NewJobService(overdue, svc, purger)

	job.PurgeStalePendingLoans()

	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), purger.before, time.Minute)
}
