package service_test

import (
	"testing"

	"ecomove/internal/db"
	"ecomove/internal/entities"
	"ecomove/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDefaults(t *testing.T) {
	store := newFakeUserStore()
	svc := service.NewUserService(store)

	user, err := svc.Create(&entities.UserRequest{
		Nombre:    "Luis Pérez",
		Correo:    "luis@ecomove.test",
		Documento: "87654321",
		Password:  "clave123",
	})
	require.NoError(t, err)

	assert.Equal(t, db.TipoUsuario, user.Tipo, "sin tipo explícito queda USUARIO")
	assert.Equal(t, db.EstadoActivo, user.Estado)
	assert.False(t, user.Eliminado)

	// La contraseña nunca viaja en la respuesta y queda hasheada
	stored := store.users[user.ID]
	assert.NotEqual(t, "clave123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUserCreateValidaciones(t *testing.T) {
	svc := service.NewUserService(newFakeUserStore())

	_, err := svc.Create(&entities.UserRequest{Correo: "x@y.z", Documento: "1", Password: "p"})
	assert.Error(t, err, "sin nombre se rechaza")

	_, err = svc.Create(&entities.UserRequest{Nombre: "X", Correo: "x@y.z", Documento: "1"})
	assert.Error(t, err, "sin contraseña se rechaza")

	_, err = svc.Create(&entities.UserRequest{Nombre: "X", Correo: "x@y.z", Documento: "1", Password: "p", Tipo: "SUPREMO"})
	assert.Error(t, err, "tipo desconocido se rechaza")
}

func TestUserUpdateParcial(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "ana@ecomove.test", "clave123")
	svc := service.NewUserService(store)

	updated, err := svc.Update(1, &entities.UserRequest{Nombre: "Ana María Gómez"})
	require.NoError(t, err)

	assert.Equal(t, "Ana María Gómez", updated.Nombre)
	assert.Equal(t, "ana@ecomove.test", updated.Correo, "los campos vacíos no pisan el valor actual")
}

// La baja es lógica: el usuario desaparece de los listados pero sigue
// resolviéndose por id para el historial.
func TestUserDeactivateEsBajaLogica(t *testing.T) {
	store := newFakeUserStore()
	user := seedUser(t, store, "ana@ecomove.test", "clave123")
	svc := service.NewUserService(store)

	require.NoError(t, svc.Deactivate(user.ID))

	list, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, list, "los inactivos no aparecen en el listado")

	got, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, db.EstadoInactivo, got.Estado)
	assert.True(t, got.Eliminado)
	assert.Equal(t, "Ana Gómez", got.Nombre)
}
