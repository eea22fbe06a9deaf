package securestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormMock(t *testing.T) (*GormBackend, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormBackend(db), mock
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "payquick"}
	assert.Equal(t, "host=db user=u password=p dbname=payquick port=5433 sslmode=disable", cfg.DSN())
}

func TestGormBackend_Get(t *testing.T) {
	backend, mock := setupGormMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "secure_blobs" WHERE storage_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "blob", "created_at", "updated_at"}).
			AddRow("payquick_encrypted_cart", "blob", now, now))

	got, err := backend.Get(context.Background(), "payquick_encrypted_cart")
	require.NoError(t, err)
	assert.Equal(t, "blob", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackend_GetMissing(t *testing.T) {
	backend, mock := setupGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "secure_blobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "blob", "created_at", "updated_at"}))

	_, err := backend.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackend_GetError(t *testing.T) {
	backend, mock := setupGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "secure_blobs"`).WillReturnError(errors.New("connection reset"))

	_, err := backend.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackend_SetUpserts(t *testing.T) {
	backend, mock := setupGormMock(t)

	mock.ExpectExec(`INSERT INTO "secure_blobs" .* ON CONFLICT \("storage_key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, backend.Set(context.Background(), "k", "v"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackend_Delete(t *testing.T) {
	backend, mock := setupGormMock(t)

	mock.ExpectExec(`DELETE FROM "secure_blobs" WHERE storage_key = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, backend.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
