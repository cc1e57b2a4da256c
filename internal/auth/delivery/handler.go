package delivery

import (
	"errors"
	"net/http"

	authdto "watches-backend/internal/auth/dto"
	"watches-backend/internal/auth/usecase"
	"watches-backend/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Printf("[Auth] Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.setTokenCookie(c, resp)
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Register(&req)
	if err != nil {
		usernameTaken := errors.Is(err, usecase.ErrUsernameTaken)
		emailTaken := errors.Is(err, usecase.ErrEmailTaken)
		switch {
		case usernameTaken && emailTaken:
			c.JSON(http.StatusConflict, gin.H{"error": "Username and email already exist"})
		case usernameTaken:
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		case emailTaken:
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		default:
			log.Printf("[Auth] Registration error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	h.setTokenCookie(c, resp)
	c.JSON(http.StatusCreated, resp)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(TokenCookie, "", -1, "/", h.config.CookieDomain, h.config.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, resp *authdto.TokenResponse) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(TokenCookie, resp.AccessToken, int(resp.ExpiresIn), "/", h.config.CookieDomain, h.config.CookieSecure, true)
}

// Cross-site cookies need SameSite=None, which browsers only accept over TLS.
func (h *AuthHandler) sameSite() http.SameSite {
	if h.config.CookieSecure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
