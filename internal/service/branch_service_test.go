package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchService_CRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewBranchService(f.store)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin(), BranchInput{ID: " B3 ", Name: "Hillside", Competitor: "Rival Mart", CompetitorID: "R3"})
	require.NoError(t, err)
	assert.Equal(t, "B3", created.ID)

	_, err = svc.Create(ctx, admin(), BranchInput{ID: "B3", Name: "Duplicate"})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := svc.Update(ctx, admin(), "B3", BranchInput{ID: "B4", Name: "Hillside North"})
	require.NoError(t, err)
	assert.Equal(t, "B4", updated.ID)

	_, err = svc.Get(ctx, "B3")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := svc.Get(ctx, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Hillside North", got.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, svc.Delete(ctx, admin(), "B4"))
	assert.ErrorIs(t, svc.Delete(ctx, admin(), "B4"), ErrNotFound)
}

func TestBranchService_Rejects(t *testing.T) {
	f := newFixture(t)
	svc := NewBranchService(f.store)
	ctx := context.Background()

	_, err := svc.Create(ctx, supervisor(), BranchInput{ID: "B9", Name: "x"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(ctx, admin(), BranchInput{ID: "B9"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, admin(), BranchInput{Name: "No id"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, admin(), "missing", BranchInput{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, staff("B1"), "B1"), ErrPermissionDenied)
}
