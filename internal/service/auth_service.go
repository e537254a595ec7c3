package service

import (
	"ecomove/internal/auth"
	"ecomove/internal/db"
	"ecomove/internal/entities"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(u *db.User) error
	List(activeOnly bool) ([]db.User, error)
	GetByID(id int64) (*db.User, error)
	GetActiveByCorreo(correo string) (*db.User, error)
	Update(u *db.User) error
	SetEstado(id int64, estado string, eliminado bool) error
}

type AuthService interface {
	Login(correo, password string) (*entities.LoginResponse, error)
}

type authService struct {
	users UserStore
}

func NewAuthService(users UserStore) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(correo, password string) (*entities.LoginResponse, error) {
	if correo == "" || password == "" {
		return nil, ErrCredencialesInvalidas
	}

	user, err := s.users.GetActiveByCorreo(correo)
	if err != nil {
		return nil, fmt.Errorf("error buscando usuario: %w", err)
	}
	if user == nil {
		return nil, ErrCredencialesInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	token, err := auth.GenerateToken(user.ID, user.Correo, user.Tipo)
	if err != nil {
		return nil, fmt.Errorf("error firmando token: %w", err)
	}

	return &entities.LoginResponse{
		Token:  token,
		UserID: user.ID,
		Nombre: user.Nombre,
		Correo: user.Correo,
		Tipo:   user.Tipo,
	}, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
