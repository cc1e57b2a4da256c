package usecase

import (
	"errors"

	authdomain "watches-backend/internal/auth/domain"
	authdto "watches-backend/internal/auth/dto"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthUsecase defines the interface for authentication use cases
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	// ValidateToken parses an access token and loads its user
	ValidateToken(token string) (*authdomain.User, error)
	GetUser(id string) (*authdomain.User, error)
}
