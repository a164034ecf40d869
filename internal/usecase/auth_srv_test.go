package usecase

import (
	"context"
	"testing"
	"time"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/dto/request"
	"hypnos-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(users *memUserRepo) AuthService {
	config := &utils.Config{JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 2}}
	return NewAuthService(&repository.Repository{User: users}, config, zap.NewNop())
}

func TestRegister(t *testing.T) {
	users := newMemUserRepo()
	svc := newAuthService(users)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:     "Jane.Doe@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane.doe@example.com", resp.User.Email)
	assert.Equal(t, entity.RoleCustomer, resp.User.Role)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := utils.ParseToken(utils.JWTConfig{Secret: "test-secret"}, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Subject)
	assert.Equal(t, string(entity.RoleCustomer), claims.Role)

	stored, err := users.FindByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	req := &request.RegisterRequest{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Password: "secret123"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")
}

func TestRegister_ValidationFailed(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "not-an-email", FirstName: "Jo", LastName: "Doe", Password: "123"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), &request.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())

	_, err = svc.Login(context.Background(), &request.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}
