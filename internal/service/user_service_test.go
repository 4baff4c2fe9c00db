package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"footfall-service/internal/model"
)

func TestUserService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store, f.hasher)
	ctx := context.Background()

	user, err := svc.Create(ctx, admin(), CreateUserInput{Username: " s001 ", Name: "Somchai", Role: model.RoleStaff, Branch: strPtr("B1")})
	require.NoError(t, err)
	assert.Equal(t, "s001", user.Username)
	assert.True(t, user.IsFirstLogin)
	assert.True(t, f.hasher.Check("s001", user.PasswordHash))

	other, err := svc.Create(ctx, admin(), CreateUserInput{Username: "a002", Name: "Second admin", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, other.IsFirstLogin)

	_, err = svc.Create(ctx, admin(), CreateUserInput{Username: "s001", Name: "Again", Role: model.RoleStaff, Branch: strPtr("B1")})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_CreateRejects(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store, f.hasher)
	ctx := context.Background()

	tests := []struct {
		name      string
		principal model.Principal
		input     CreateUserInput
		want      error
	}{
		{name: "not admin", principal: supervisor(), input: CreateUserInput{Username: "x", Name: "x", Role: model.RoleStaff, Branch: strPtr("B1")}, want: ErrPermissionDenied},
		{name: "missing name", principal: admin(), input: CreateUserInput{Username: "x", Role: model.RoleStaff, Branch: strPtr("B1")}, want: ErrInvalidInput},
		{name: "unknown role", principal: admin(), input: CreateUserInput{Username: "x", Name: "x", Role: "Owner"}, want: ErrInvalidInput},
		{name: "staff without branch", principal: admin(), input: CreateUserInput{Username: "x", Name: "x", Role: model.RoleStaff}, want: ErrInvalidInput},
		{name: "unknown branch", principal: admin(), input: CreateUserInput{Username: "x", Name: "x", Role: model.RoleStaff, Branch: strPtr("B9")}, want: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.principal, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserService_ListAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store, f.hasher)
	ctx := context.Background()

	for _, name := range []string{"admin", "s001", "s002"} {
		role := model.RoleStaff
		if name == "admin" {
			role = model.RoleAdmin
		}
		_, err := svc.Create(ctx, admin(), CreateUserInput{Username: name, Name: name, Role: role, Branch: strPtr("B1")})
		require.NoError(t, err)
	}

	users, err := svc.List(ctx, admin())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, "admin", u.Username)
	}

	_, err = svc.List(ctx, staff("B1"))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.ErrorIs(t, svc.Delete(ctx, admin(), "admin"), ErrConflict)
	assert.ErrorIs(t, svc.Delete(ctx, staff("B1"), "s002"), ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, admin(), "s002"))
	assert.ErrorIs(t, svc.Delete(ctx, admin(), "s002"), ErrNotFound)
}
