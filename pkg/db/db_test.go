package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "crowdfund", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=crowdfund sslmode=disable", cfg.DSN())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create user: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(fmt.Errorf("boom")))
}

func TestTransactionLifecycle(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	t.Run("CommitThenDeferredRollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		tx, err := BeginTx(context.Background(), sqlxDB)
		require.NoError(t, err)
		require.NoError(t, CommitTx(tx))
		RollbackTx(tx) // sql.ErrTxDone is swallowed

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		tx, err := BeginTx(context.Background(), sqlxDB)
		require.NoError(t, err)
		RollbackTx(tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BeginFails", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(fmt.Errorf("pool exhausted"))

		tx, err := BeginTx(context.Background(), sqlxDB)
		assert.Error(t, err)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
