package service_test

import (
	"testing"
	"time"

	"ecomove/internal/db"
	"ecomove/internal/entities"
	"ecomove/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() ([]db.Loan, []db.User, []db.Transport, []db.Station) {
	inicio := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	loans := []db.Loan{
		{ID: 1, UsuarioID: 7, TransporteID: 10, EstacionOrigenID: 1, EstacionDestinoID: 2,
			Inicio: inicio, Fin: inicio.Add(time.Hour), Costo: decimal.NewFromInt(10), Estado: db.PrestamoCompletado},
		{ID: 2, UsuarioID: 8, TransporteID: 11, EstacionOrigenID: 2, EstacionDestinoID: 1,
			Inicio: inicio.AddDate(0, 0, 5), Fin: inicio.AddDate(0, 0, 5).Add(time.Hour), Costo: decimal.NewFromInt(12), Estado: db.PrestamoEnCurso},
		// Referencias rotas a propósito: usuario, transporte y estaciones inexistentes
		{ID: 3, UsuarioID: 99, TransporteID: 99, EstacionOrigenID: 99, EstacionDestinoID: 99,
			Inicio: inicio.AddDate(0, 0, 10), Fin: inicio.AddDate(0, 0, 10).Add(time.Hour), Costo: decimal.NewFromInt(8), Estado: db.PrestamoCancelado},
	}
	users := []db.User{
		{ID: 7, Nombre: "Ana Gómez"},
		{ID: 8, Nombre: "Luis Pérez"},
	}
	transports := []db.Transport{
		{ID: 10, Tipo: "BICICLETA"},
		{ID: 11, Tipo: "PATINETA"},
	}
	stations := []db.Station{
		{ID: 1, Ubicacion: "Parque Central"},
		{ID: 2, Ubicacion: "Terminal Norte"},
	}
	return loans, users, transports, stations
}

func TestBuildLoanViewsCruzaReferencias(t *testing.T) {
	loans, users, transports, stations := historyFixture()

	views := service.BuildLoanViews(loans, users, transports, stations)
	require.Len(t, views, 3)

	assert.Equal(t, "Ana Gómez", views[0].UsuarioNombre)
	assert.Equal(t, "BICICLETA", views[0].TransporteTipo)
	assert.Equal(t, "Parque Central", views[0].OrigenUbicacion)
	assert.Equal(t, "Terminal Norte", views[0].DestinoUbicacion)
}

func TestBuildLoanViewsReferenciasRotas(t *testing.T) {
	loans, users, transports, stations := historyFixture()

	views := service.BuildLoanViews(loans, users, transports, stations)

	// El préstamo con referencias rotas no se descarta, se rellena
	roto := views[2]
	assert.Equal(t, "Usuario no encontrado", roto.UsuarioNombre)
	assert.Equal(t, "Sin tipo", roto.TransporteTipo)
	assert.Equal(t, "Origen", roto.OrigenUbicacion)
	assert.Equal(t, "Destino", roto.DestinoUbicacion)
}

func TestFilterLoanViewsPorUsuario(t *testing.T) {
	loans, users, transports, stations := historyFixture()
	views := service.BuildLoanViews(loans, users, transports, stations)

	out := service.FilterLoanViews(views, entities.HistoryFilter{UsuarioID: 7})
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestFilterLoanViewsBusquedaLibre(t *testing.T) {
	loans, users, transports, stations := historyFixture()
	views := service.BuildLoanViews(loans, users, transports, stations)

	// Por nombre, sin distinguir mayúsculas
	out := service.FilterLoanViews(views, entities.HistoryFilter{Search: "ana"})
	require.Len(t, out, 1)
	assert.Equal(t, "Ana Gómez", out[0].UsuarioNombre)

	// Por id de préstamo
	out = service.FilterLoanViews(views, entities.HistoryFilter{Search: "3"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)
}

func TestFilterLoanViewsRangoDeFechas(t *testing.T) {
	loans, users, transports, stations := historyFixture()
	views := service.BuildLoanViews(loans, users, transports, stations)

	desde := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	out := service.FilterLoanViews(views, entities.HistoryFilter{Desde: desde, Hasta: hasta})
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	// Solo Desde
	out = service.FilterLoanViews(views, entities.HistoryFilter{Desde: desde})
	assert.Len(t, out, 2)
}

func TestSummarizeLoans(t *testing.T) {
	loans, users, transports, stations := historyFixture()
	views := service.BuildLoanViews(loans, users, transports, stations)

	resumen := service.SummarizeLoans(views)
	assert.Equal(t, 3, resumen.Total)
	assert.Equal(t, 1, resumen.Completados)
	assert.Equal(t, 1, resumen.EnCurso)
	assert.Equal(t, 1, resumen.Cancelados)
	assert.Equal(t, 0, resumen.Pendientes)
}
