package db

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMigrationStatements_TablesBeforeIndexes(t *testing.T) {
	created := map[string]bool{}
	for i, stmt := range migrationStatements {
		fields := strings.Fields(stmt)
		switch {
		case strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS"):
			created[fields[5]] = true
		case strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"):
			table := fields[7]
			assert.True(t, created[table], "statement %d indexes %s before it exists", i+1, table)
		}
	}
	for _, table := range []string{"branches", "users", "traffic_events", "bill_records", "dashboard_figures", "sessions", "login_logs"} {
		assert.True(t, created[table], table)
	}
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	logger := newGormLogger(zerolog.New(&buf))
	query := func() (string, int64) { return "SELECT 1", 1 }

	logger.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Zero(t, buf.Len())

	logger.Trace(context.Background(), time.Now(), query, errors.New("boom"))
	assert.Contains(t, buf.String(), "query failed")

	buf.Reset()
	logger.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, buf.String(), "slow query")

	buf.Reset()
	logger.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), query, errors.New("boom"))
	assert.Zero(t, buf.Len())
}
