package usecase

import (
	"context"
	"testing"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/dto/request"
	"hypnos-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Email:        email,
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
	}
}

func strPtr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret123")
	svc := NewUserService(newMemUserRepo(user), zap.NewNop())

	resp, err := svc.GetProfile(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.Email)

	_, err = svc.GetProfile(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.GetProfile(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestUpdateProfile(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret123")
	users := newMemUserRepo(user)
	svc := NewUserService(users, zap.NewNop())

	resp, err := svc.UpdateProfile(context.Background(), user.ID.String(), &request.UpdateProfileRequest{
		Email:    strPtr("Jane.Smith@Example.com"),
		LastName: strPtr("Smith"),
	})

	require.NoError(t, err)
	assert.Equal(t, "jane.smith@example.com", resp.Email)
	assert.Equal(t, "Smith", resp.LastName)
	assert.Equal(t, "Jane", resp.FirstName)

	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.Equal(t, "jane.smith@example.com", stored.Email)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	jane := newTestUser(t, "jane@example.com", "secret123")
	john := newTestUser(t, "john@example.com", "secret123")
	svc := NewUserService(newMemUserRepo(jane, john), zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), jane.ID.String(), &request.UpdateProfileRequest{Email: strPtr("john@example.com")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")
}

func TestChangePassword(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret123")
	users := newMemUserRepo(user)
	svc := NewUserService(users, zap.NewNop())

	err := svc.ChangePassword(context.Background(), user.ID.String(), &request.ChangePasswordRequest{Password: "wrong", NewPassword: "another1"})
	require.Error(t, err)
	assert.Equal(t, "incorrect password", err.Error())

	err = svc.ChangePassword(context.Background(), user.ID.String(), &request.ChangePasswordRequest{Password: "secret123", NewPassword: "another1"})
	require.NoError(t, err)

	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.True(t, utils.CheckPasswordHash("another1", stored.PasswordHash))
}

func TestGetAllUsers(t *testing.T) {
	svc := NewUserService(newMemUserRepo(
		newTestUser(t, "c@example.com", "secret123"),
		newTestUser(t, "a@example.com", "secret123"),
		newTestUser(t, "b@example.com", "secret123"),
	), zap.NewNop())

	resp, err := svc.GetAllUsers(context.Background(), &request.PaginatedRequest{Page: 2, PerPage: 2})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "c@example.com", resp.Data[0].Email)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestDeleteUser(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret123")
	svc := NewUserService(newMemUserRepo(user), zap.NewNop())

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID.String()))

	_, err := svc.GetProfile(context.Background(), user.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = svc.DeleteUser(context.Background(), user.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
