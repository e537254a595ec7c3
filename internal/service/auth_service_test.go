package service_test

import (
	"errors"
	"testing"

	"ecomove/internal/db"
	"ecomove/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[int64]*db.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*db.User{}}
}

func (f *fakeUserStore) Create(u *db.User) error {
	f.nextID++
	u.ID = f.nextID
	copia := *u
	f.users[u.ID] = &copia
	return nil
}

func (f *fakeUserStore) List(activeOnly bool) ([]db.User, error) {
	var out []db.User
	for _, u := range f.users {
		if activeOnly && (u.Eliminado || u.Estado != db.EstadoActivo) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) GetByID(id int64) (*db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("usuario no encontrado")
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUserStore) GetActiveByCorreo(correo string) (*db.User, error) {
	for _, u := range f.users {
		if u.Correo == correo && !u.Eliminado && u.Estado == db.EstadoActivo {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(u *db.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return errors.New("usuario no encontrado")
	}
	copia := *u
	f.users[u.ID] = &copia
	return nil
}

func (f *fakeUserStore) SetEstado(id int64, estado string, eliminado bool) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("usuario no encontrado")
	}
	u.Estado = estado
	u.Eliminado = eliminado
	return nil
}

func seedUser(t *testing.T, store *fakeUserStore, correo, password string) *db.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &db.User{
		Nombre:       "Ana Gómez",
		Correo:       correo,
		Documento:    "12345678",
		Tipo:         db.TipoAdmin,
		Estado:       db.EstadoActivo,
		PasswordHash: string(hash),
	}
	require.NoError(t, store.Create(user))
	return user
}

func TestLoginOK(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-test")

	store := newFakeUserStore()
	seedUser(t, store, "ana@ecomove.test", "clave123")
	svc := service.NewAuthService(store)

	resp, err := svc.Login("ana@ecomove.test", "clave123")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "Ana Gómez", resp.Nombre)
	assert.Equal(t, db.TipoAdmin, resp.Tipo)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-test")

	store := newFakeUserStore()
	seedUser(t, store, "ana@ecomove.test", "clave123")
	svc := service.NewAuthService(store)

	_, err := svc.Login("ana@ecomove.test", "otra-clave")
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)

	_, err = svc.Login("nadie@ecomove.test", "clave123")
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)

	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestLoginUsuarioDadoDeBaja(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-test")

	store := newFakeUserStore()
	user := seedUser(t, store, "ana@ecomove.test", "clave123")
	require.NoError(t, store.SetEstado(user.ID, db.EstadoInactivo, true))

	svc := service.NewAuthService(store)
	_, err := svc.Login("ana@ecomove.test", "clave123")
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}
