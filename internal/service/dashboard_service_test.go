package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"footfall-service/internal/aggregate"
	"footfall-service/internal/model"
)

func seedDashboard(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	tracker := newTrackerService(f)
	bills := newBillService(f)

	record := func(p model.Principal, input RecordEventInput) {
		_, err := tracker.Record(ctx, p, input)
		require.NoError(t, err)
	}

	// 2024-03-10 morning
	record(staff("B1"), RecordEventInput{Group: model.GroupCustomer, Type: model.TypeMale, Age: "25", Career: "student"})
	record(staff("B1"), RecordEventInput{Group: model.GroupProduct, Type: model.TypeDrink, Cups: 3})
	record(staff("B2"), RecordEventInput{Group: model.GroupVehicle, Type: model.TypeCar})
	_, err := bills.Record(ctx, staff("B1"), RecordBillInput{Period: "morning", Slot: "08:00–09:00", BillCount: 4})
	require.NoError(t, err)

	// 2024-03-11 evening
	f.now = time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC)
	record(staff("B1"), RecordEventInput{Group: model.GroupCustomer, Type: model.TypeFemale, Age: "45"})
	_, err = bills.Record(ctx, staff("B2"), RecordBillInput{Period: "evening", Slot: "17:00–18:00", BillCount: 6})
	require.NoError(t, err)

	f.now = fixedNow
}

func TestDashboardService_SummaryAllBranches(t *testing.T) {
	f := newFixture(t)
	seedDashboard(t, f)
	svc := NewDashboardService(f.store)

	summary, err := svc.Summary(context.Background(), admin(), DashboardQuery{Branches: []string{aggregate.AllBranches}})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-03-11", "2024-03-10"}, summary.Dates)
	require.Len(t, summary.Daily, 2)
	assert.Equal(t, "2024-03-10", summary.Daily[0].Date)
	assert.Equal(t, 1, summary.Daily[0].Car)
	assert.Equal(t, 3, summary.Daily[0].DrinkCup)
	assert.Equal(t, 1, summary.Daily[1].Female)
	assert.Equal(t, 10, summary.TotalBills)
	assert.Equal(t, []string{"morning", "afternoon", "evening", "late-night"}, summary.Periods)

	require.Len(t, summary.Careers, 2)
	assert.Equal(t, "student", summary.Careers[0].Label)
	assert.Equal(t, aggregate.UnspecifiedOccupation, summary.Careers[1].Label)
	assert.Equal(t, []aggregate.Count{{Label: model.TypeCar, Count: 1}, {Label: model.TypeMoto}, {Label: model.TypeWalk}}, summary.Vehicles)
}

func TestDashboardService_SummaryFilters(t *testing.T) {
	f := newFixture(t)
	seedDashboard(t, f)
	svc := NewDashboardService(f.store)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, supervisor(), DashboardQuery{Branches: []string{"B2"}, Date: "2024-03-11"})
	require.NoError(t, err)
	assert.Equal(t, 6, summary.TotalBills)
	assert.Equal(t, []string{"2024-03-11", "2024-03-10"}, summary.Dates)
	assert.Empty(t, summary.Products)

	summary, err = svc.Summary(ctx, admin(), DashboardQuery{Period: "evening"})
	require.NoError(t, err)
	require.Len(t, summary.Daily, 1)
	assert.Equal(t, 6, summary.Daily[0].TotalBills)

	_, err = svc.Summary(ctx, admin(), DashboardQuery{Period: "brunch"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDashboardService_StaffSeesOwnBranch(t *testing.T) {
	f := newFixture(t)
	seedDashboard(t, f)
	svc := NewDashboardService(f.store)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, staff("B1"), DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, summary.Scope.Branches)
	assert.Equal(t, 4, summary.TotalBills)
	assert.Empty(t, summary.Vehicles)

	_, err = svc.Summary(ctx, staff("B1"), DashboardQuery{Branches: []string{"B2"}})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDashboardService_Figures(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.store)
	ctx := context.Background()

	figures, err := svc.Figures(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDashboardID, figures.ID)
	assert.Zero(t, figures.Diff)

	_, err = svc.UpdateFigures(ctx, supervisor(), FiguresPatch{TC7: intPtr(1)})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.UpdateFigures(ctx, admin(), FiguresPatch{TC7: intPtr(120), TCCJ: intPtr(95), AsOf: strPtr("Mar 2024")})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Diff)

	updated, err = svc.UpdateFigures(ctx, admin(), FiguresPatch{TCCJ: intPtr(130)})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.TC7)
	assert.Equal(t, "Mar 2024", updated.AsOf)
	assert.Equal(t, -10, updated.Diff)

	_, err = svc.UpdateFigures(ctx, admin(), FiguresPatch{AvgStores: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
