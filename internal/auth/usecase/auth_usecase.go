package usecase

import (
	"errors"
	"fmt"
	"time"

	authdomain "watches-backend/internal/auth/domain"
	authdto "watches-backend/internal/auth/dto"
	"watches-backend/internal/auth/repository"
	"watches-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	log.Printf("[Auth] User %s logged in", user.ID)
	return u.issueToken(user)
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	byUsername, err := u.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	byEmail, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	switch {
	case byUsername != nil && byEmail != nil:
		return nil, errors.Join(ErrUsernameTaken, ErrEmailTaken)
	case byUsername != nil:
		return nil, ErrUsernameTaken
	case byEmail != nil:
		return nil, ErrEmailTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &authdomain.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      authdomain.Role(req.Role),
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[Auth] Registered %s user %s", user.Role, user.ID)
	return u.issueToken(user)
}

func (u *authUsecase) GetUser(id string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) issueToken(user *authdomain.User) (*authdto.TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     now.Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &authdto.TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(u.config.JWTAccessExpiry.Seconds()),
		User:        user,
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return u.GetUser(userID)
}
