package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/skbavi/supermarket-pos-api/internal/infrastructure/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
	"github.com/skbavi/supermarket-pos-api/pkg/utils"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.MemoryUserRepository) {
	userRepo := repository.NewMemoryUserRepository()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	authService := NewAuthService(userRepo, nil, jwtManager, nil, nil, zaptest.NewLogger(t))
	return authService, userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	authService, _ := newAuthFixture(t)

	registered, err := authService.Register(context.Background(), &RegisterInput{
		Name:     "Kasun",
		Email:    "kasun@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, "user", registered.User.Role)
	assert.NotEqual(t, "secret123", registered.User.Password, "password must be stored hashed")

	loggedIn, err := authService.Login(context.Background(), &LoginInput{
		Email:    "kasun@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	authService, _ := newAuthFixture(t)

	_, err := authService.Register(context.Background(), &RegisterInput{
		Email:    "not-an-email",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.ErrInvalidEmail, err)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	authService, _ := newAuthFixture(t)

	_, err := authService.Register(context.Background(), &RegisterInput{
		Email:    "kasun@example.com",
		Password: "abc",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.ErrWeakPassword, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	authService, _ := newAuthFixture(t)

	_, err := authService.Register(context.Background(), &RegisterInput{
		Email:    "kasun@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = authService.Register(context.Background(), &RegisterInput{
		Email:    "kasun@example.com",
		Password: "different456",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}

func TestLoginWrongPasswordAndUnknownAccountLookTheSame(t *testing.T) {
	authService, _ := newAuthFixture(t)

	_, err := authService.Register(context.Background(), &RegisterInput{
		Email:    "kasun@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, wrongPassword := authService.Login(context.Background(), &LoginInput{
		Email:    "kasun@example.com",
		Password: "wrong",
	})
	_, unknownAccount := authService.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.Equal(t, apperror.ErrInvalidCredentials, wrongPassword)
	assert.Equal(t, apperror.ErrInvalidCredentials, unknownAccount)
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	authService, _ := newAuthFixture(t)

	registered, err := authService.Register(context.Background(), &RegisterInput{
		Email:    "kasun@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := authService.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = authService.RefreshToken(context.Background(), "garbage")
	assert.Equal(t, apperror.ErrInvalidToken, err)
}

func TestChangePassword(t *testing.T) {
	authService, _ := newAuthFixture(t)

	registered, err := authService.Register(context.Background(), &RegisterInput{
		Email:    "kasun@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	err = authService.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          registered.User.ID,
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	err = authService.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          registered.User.ID,
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, err = authService.Login(context.Background(), &LoginInput{
		Email:    "kasun@example.com",
		Password: "newsecret",
	})
	require.NoError(t, err)
}
