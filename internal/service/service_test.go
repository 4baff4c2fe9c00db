package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"footfall-service/internal/auth"
	"footfall-service/internal/model"
	"footfall-service/internal/repository"
	"footfall-service/internal/repository/memory"
)

// 08:30 on 2024-03-10 on the UTC+7 clock.
var fixedNow = time.Date(2024, 3, 10, 1, 30, 0, 0, time.UTC)

type fixture struct {
	store  repository.Store
	hasher auth.PasswordHasher
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mem, err := memory.New("", zerolog.Nop())
	require.NoError(t, err)

	f := &fixture{
		store:  mem.Records(),
		hasher: auth.NewBcryptHasher(bcrypt.MinCost),
		now:    fixedNow,
	}

	ctx := context.Background()
	require.NoError(t, f.store.Branches.Create(ctx, &model.Branch{ID: "B1", Name: "Central"}))
	require.NoError(t, f.store.Branches.Create(ctx, &model.Branch{ID: "B2", Name: "Riverside"}))
	return f
}

func (f *fixture) clock() time.Time {
	return f.now
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func admin() model.Principal {
	return model.Principal{Username: "admin", Role: model.RoleAdmin}
}

func supervisor() model.Principal {
	return model.Principal{Username: "sup", Role: model.RoleSupervisor}
}

func staff(branch string) model.Principal {
	return model.Principal{Username: "s-" + branch, Role: model.RoleStaff, Branch: strPtr(branch)}
}
