package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Unique violation code",
			err:      &pgconn.PgError{Code: "23505"},
			expected: true,
		},
		{
			name:     "Other postgres error",
			err:      &pgconn.PgError{Code: "23503"},
			expected: false,
		},
		{
			name:     "Plain error",
			err:      errors.New("database error"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err))
		})
	}
}

func TestManagerBegin(t *testing.T) {
	t.Run("Commit on success", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectBegin()
		mockDB.ExpectExec("UPDATE orders").WithArgs("shipped").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockDB.ExpectCommit()

		db := New(mockDB)
		manager := NewTXManager(mockDB)

		err = manager.Begin(context.Background(), func(ctx context.Context) error {
			_, execErr := db.Exec(ctx, "UPDATE orders SET status = $1", "shipped")
			return execErr
		})

		assert.NoError(t, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Rollback on failure", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectBegin()
		mockDB.ExpectRollback()

		manager := NewTXManager(mockDB)

		err = manager.Begin(context.Background(), func(ctx context.Context) error {
			return errors.New("boom")
		})

		assert.EqualError(t, err, "boom")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Nested call reuses the open transaction", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectBegin()
		mockDB.ExpectCommit()

		manager := NewTXManager(mockDB)

		err = manager.Begin(context.Background(), func(ctx context.Context) error {
			return manager.Begin(ctx, func(ctx context.Context) error {
				return nil
			})
		})

		assert.NoError(t, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Begin failure surfaces", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectBegin().WillReturnError(errors.New("no connection"))

		manager := NewTXManager(mockDB)

		err = manager.Begin(context.Background(), func(ctx context.Context) error {
			return nil
		})

		assert.EqualError(t, err, "no connection")
	})
}

func TestDBRouting(t *testing.T) {
	t.Run("Query outside a transaction goes to the pool", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectQuery("SELECT id FROM users").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

		db := New(mockDB)
		rows, err := db.Query(context.Background(), "SELECT id FROM users")
		assert.NoError(t, err)
		rows.Close()
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
