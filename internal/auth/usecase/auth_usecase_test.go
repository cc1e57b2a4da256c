package usecase

import (
	"path/filepath"
	"testing"
	"time"

	authdomain "watches-backend/internal/auth/domain"
	authdto "watches-backend/internal/auth/dto"
	"watches-backend/internal/auth/repository"
	"watches-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestUsecase(t *testing.T) AuthUsecase {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}))

	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour}
	return NewAuthUsecase(repository.NewUserRepository(db), cfg)
}

func registerReq(username, email string) *authdto.RegisterRequest {
	return &authdto.RegisterRequest{
		Username: username, Email: email, Password: "longenough",
		FirstName: "Grace", LastName: "Hopper", Role: "admin",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newTestUsecase(t)

	resp, err := uc.Register(registerReq("grace", "grace@watches.test"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.NotEqual(t, "longenough", resp.User.Password)

	login, err := uc.Login(&authdto.LoginRequest{Email: "grace@watches.test", Password: "longenough"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, authdomain.RoleAdmin, user.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	uc := newTestUsecase(t)
	_, err := uc.Register(registerReq("grace", "grace@watches.test"))
	require.NoError(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "grace@watches.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(&authdto.LoginRequest{Email: "nobody@watches.test", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConflicts(t *testing.T) {
	uc := newTestUsecase(t)
	_, err := uc.Register(registerReq("grace", "grace@watches.test"))
	require.NoError(t, err)

	_, err = uc.Register(registerReq("grace", "other@watches.test"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, ErrEmailTaken)

	_, err = uc.Register(registerReq("other", "grace@watches.test"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = uc.Register(registerReq("grace", "grace@watches.test"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestValidateTokenRejects(t *testing.T) {
	uc := newTestUsecase(t)

	_, err := uc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := wrongKey.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = uc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err = expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = uc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenUnknownUser(t *testing.T) {
	uc := newTestUsecase(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "ghost",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = uc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
