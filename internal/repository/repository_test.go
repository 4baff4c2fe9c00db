package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestTrafficEventRepository_ListComposesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrafficEventRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "traffic_events" WHERE branch_id IN \(\$1,\$2\) AND date = \$3 AND period = \$4 AND slot = \$5 ORDER BY created_at ASC`).
		WithArgs("B1", "B2", "2024-01-01", "morning", "06:00–07:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "branch_id", "date"}).
			AddRow(uuid.NewString(), "B1", "2024-01-01").
			AddRow(uuid.NewString(), "B2", "2024-01-01"))

	events, err := repo.List(context.Background(), TrafficFilter{
		BranchIDs: []string{"B1", "B2"},
		Date:      strPtr("2024-01-01"),
		Period:    strPtr("morning"),
		Slot:      strPtr("06:00–07:00"),
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "B2", events[1].BranchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrafficEventRepository_ListWithoutFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrafficEventRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM "traffic_events" ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	events, err := repo.List(context.Background(), TrafficFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrafficEventRepository_Latest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrafficEventRepository(db)
	id := uuid.New()
	at := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "traffic_events" WHERE branch_id = \$1 AND date = \$2 ORDER BY created_at DESC,"traffic_events"."id" LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "branch_id", "date", "created_at"}).
			AddRow(id.String(), "B1", "2024-01-01", at))

	event, err := repo.Latest(context.Background(), "B1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, id, event.ID)
	assert.True(t, at.Equal(event.CreatedAt))

	mock.ExpectQuery(`SELECT \* FROM "traffic_events" WHERE branch_id = \$1 AND date = \$2 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.Latest(context.Background(), "B1", "2024-01-02")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrafficEventRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrafficEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "traffic_events" WHERE id = \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepository_ListAndLatest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "bill_records" WHERE branch_id IN \(\$1\) AND period = \$2 ORDER BY created_at ASC`).
		WithArgs("B1", "evening").
		WillReturnRows(sqlmock.NewRows([]string{"id", "branch_id", "bill_count"}).
			AddRow(uuid.NewString(), "B1", 12))

	bills, err := repo.List(context.Background(), BillFilter{BranchIDs: []string{"B1"}, Period: strPtr("evening")})
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, 12, bills[0].BillCount)

	mock.ExpectQuery(`SELECT \* FROM "bill_records" WHERE branch_id = \$1 AND date = \$2 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.Latest(context.Background(), "B1", "2024-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
