package service

import (
	"ecomove/internal/db"
	"ecomove/internal/entities"
	"fmt"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func userResponse(u *db.User) *entities.UserResponse {
	return &entities.UserResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Correo:    u.Correo,
		Documento: u.Documento,
		Tipo:      u.Tipo,
		Estado:    u.Estado,
		Eliminado: u.Eliminado,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *UserService) Create(req *entities.UserRequest) (*entities.UserResponse, error) {
	if req.Nombre == "" || req.Correo == "" || req.Documento == "" {
		return nil, fmt.Errorf("nombre, correo y documento son requeridos")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("la contraseña es requerida")
	}
	tipo := req.Tipo
	if tipo == "" {
		tipo = db.TipoUsuario
	}
	if tipo != db.TipoAdmin && tipo != db.TipoUsuario {
		return nil, fmt.Errorf("tipo de usuario no soportado: %s", tipo)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hasheando contraseña: %w", err)
	}

	user := &db.User{
		Nombre:       req.Nombre,
		Correo:       req.Correo,
		Documento:    req.Documento,
		Tipo:         tipo,
		Estado:       db.EstadoActivo,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// List devuelve solo usuarios activos; los dados de baja se excluyen de las
// vistas de listado pero siguen resolviéndose por id.
func (s *UserService) List() ([]entities.UserResponse, error) {
	users, err := s.users.List(true)
	if err != nil {
		return nil, err
	}
	out := make([]entities.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userResponse(&users[i]))
	}
	return out, nil
}

func (s *UserService) GetByID(id int64) (*entities.UserResponse, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

func (s *UserService) Update(id int64, req *entities.UserRequest) (*entities.UserResponse, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Correo != "" {
		user.Correo = req.Correo
	}
	if req.Documento != "" {
		user.Documento = req.Documento
	}
	if req.Tipo != "" {
		user.Tipo = req.Tipo
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// Deactivate es la baja lógica: estado INACTIVO + marca eliminado.
func (s *UserService) Deactivate(id int64) error {
	return s.users.SetEstado(id, db.EstadoInactivo, true)
}
