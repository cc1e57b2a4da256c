package dto

import authdomain "watches-backend/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username  string `json:"username" form:"username" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" form:"firstName" binding:"required"`
	LastName  string `json:"last_name" form:"lastName" binding:"required"`
	Role      string `json:"role" form:"role" binding:"required,oneof=admin customer"`
}

type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresIn   int64            `json:"expires_in"`
	User        *authdomain.User `json:"user"`
}
