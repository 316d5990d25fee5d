package database

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ama-impact/ama-impact/pkg/impact/config"
	"github.com/ama-impact/ama-impact/pkg/impact/logging"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T, monitorPings bool) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{"", "sqlite"},
		{"sqlite", "sqlite"},
		{"postgres", "postgres"},
		{"mysql", "mysql"},
	}
	for _, tt := range tests {
		d, err := Dialector(tt.driver, "dsn")
		require.NoError(t, err, tt.driver)
		assert.Equal(t, tt.name, d.Name())
	}

	_, err := Dialector("oracle", "dsn")
	assert.Error(t, err)
}

func TestConnectSQLite(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: "sqlite",
		DatabaseFile:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := Connect(cfg, logging.New(io.Discard, false))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, models.AutoMigrate(db))
	assert.NoError(t, Ping(context.Background(), db))
}

func TestPingPostgres(t *testing.T) {
	db, mock := newMockDB(t, true)

	mock.ExpectPing()
	assert.NoError(t, Ping(context.Background(), db))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, Ping(context.Background(), db))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueriesExcludeSoftDeleted(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "todos" WHERE "todos"."deleted_at" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var count int64
	require.NoError(t, db.Model(&models.Todo{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	mock.ExpectQuery(`SELECT \* FROM "rfes" WHERE status IN \(\$1,\$2\)`).
		WithArgs("RECEIVED", "IN_PROGRESS").
		WillReturnRows(sqlmock.NewRows([]string{"id", "petition_id", "rfe_type", "status"}).
			AddRow(7, 2, "OTHER", "RECEIVED"))

	var rfes []models.RFE
	require.NoError(t, db.Where("status IN ?", []models.RFEStatus{models.RFEStatusReceived, models.RFEStatusInProgress}).Find(&rfes).Error)
	require.Len(t, rfes, 1)
	assert.Equal(t, uint(7), rfes[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
