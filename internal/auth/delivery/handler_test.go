package delivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "watches-backend/internal/auth/domain"
	authdto "watches-backend/internal/auth/dto"
	"watches-backend/internal/auth/usecase"
	"watches-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	users       map[string]*authdomain.User // keyed by token
	registerErr error
}

func (f *fakeAuth) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if req.Password != "correct-horse" {
		return nil, usecase.ErrInvalidCredentials
	}
	return &authdto.TokenResponse{AccessToken: "tok-admin", ExpiresIn: 86400, User: f.users["tok-admin"]}, nil
}

func (f *fakeAuth) Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	u := &authdomain.User{ID: "u-new", Username: req.Username, Email: req.Email, Role: authdomain.Role(req.Role)}
	return &authdto.TokenResponse{AccessToken: "tok-new", ExpiresIn: 86400, User: u}, nil
}

func (f *fakeAuth) ValidateToken(token string) (*authdomain.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, usecase.ErrInvalidToken
}

func (f *fakeAuth) GetUser(id string) (*authdomain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, usecase.ErrUserNotFound
}

func newTestRouter(auth *fakeAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTAccessExpiry: 24 * time.Hour}
	h := NewAuthHandler(auth, cfg)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", AuthMiddleware(auth), h.Me)
	r.GET("/admin", AuthMiddleware(auth), RequireRole(authdomain.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	return r
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]*authdomain.User{
		"tok-admin":    {ID: "u-1", Email: "admin@watches.test", Role: authdomain.RoleAdmin},
		"tok-customer": {ID: "u-2", Email: "buyer@watches.test", Role: authdomain.RoleCustomer},
	}}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == TokenCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", TokenCookie)
	return nil
}

func TestLoginSetsCookie(t *testing.T) {
	r := newTestRouter(newFakeAuth())

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "admin@watches.test", "password": "correct-horse"})

	require.Equal(t, http.StatusOK, w.Code)
	cookie := tokenCookie(t, w)
	assert.Equal(t, "tok-admin", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Contains(t, w.Body.String(), `"access_token":"tok-admin"`)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newTestRouter(newFakeAuth())

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "admin@watches.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister(t *testing.T) {
	valid := gin.H{
		"username": "collector", "email": "c@watches.test", "password": "longenough",
		"first_name": "Ada", "last_name": "Lovelace", "role": "customer",
	}

	tests := []struct {
		name     string
		err      error
		body     gin.H
		wantCode int
		wantMsg  string
	}{
		{name: "created", body: valid, wantCode: http.StatusCreated},
		{name: "short password", body: gin.H{"username": "x", "email": "x@watches.test", "password": "short", "first_name": "a", "last_name": "b", "role": "customer"}, wantCode: http.StatusBadRequest},
		{name: "username taken", err: usecase.ErrUsernameTaken, body: valid, wantCode: http.StatusConflict, wantMsg: "Username already exists"},
		{name: "email taken", err: usecase.ErrEmailTaken, body: valid, wantCode: http.StatusConflict, wantMsg: "Email already exists"},
		{name: "both taken", err: errors.Join(usecase.ErrUsernameTaken, usecase.ErrEmailTaken), body: valid, wantCode: http.StatusConflict, wantMsg: "Username and email already exist"},
		{name: "storage failure", err: errors.New("db down"), body: valid, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := newFakeAuth()
			auth.registerErr = tt.err
			r := newTestRouter(auth)

			w := doJSON(r, http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, w.Body.String(), tt.wantMsg)
			}
			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, "tok-new", tokenCookie(t, w).Value)
			}
		})
	}
}

func TestMiddlewareAcceptsBearerAndCookie(t *testing.T) {
	r := newTestRouter(newFakeAuth())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok-admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@watches.test")

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "tok-customer"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buyer@watches.test")
}

func TestMiddlewareRejects(t *testing.T) {
	r := newTestRouter(newFakeAuth())

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Token tok-admin",
		"unknown":   "Bearer forged",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter(newFakeAuth())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer tok-admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer tok-customer")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newTestRouter(newFakeAuth())

	w := doJSON(r, http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookie := tokenCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
