package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Deduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// quantity 3 - deduct 3 leaves 0
		mock.ExpectQuery(`UPDATE product_inventory SET quantity = quantity - \$2, last_updated = NOW\(\) WHERE product_id = \$1 AND quantity >= \$2 RETURNING quantity`).
			WithArgs(productID, 3).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(0))

		remaining, err := repo.Deduct(ctx, productID, 3)
		assert.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		// Guard rejects the update; the record exists, so the floor was the cause.
		mock.ExpectQuery(`UPDATE product_inventory`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}))

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.Deduct(ctx, productID, 1)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE product_inventory`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}))

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.Deduct(ctx, productID, 1)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE product_inventory`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Deduct(ctx, productID, 1)
		assert.Error(t, err)
	})
}

func TestRepository_DeductTx_UsesGivenTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE product_inventory`).
		WithArgs(productID, 2).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(8))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	remaining, err := repo.DeductTx(ctx, tx, productID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 8, remaining)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	mock.ExpectQuery(`INSERT INTO product_inventory .* ON CONFLICT \(product_id\) DO UPDATE SET quantity = EXCLUDED.quantity`).
		WithArgs(productID, 25).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "last_updated"}).
			AddRow(productID, 25, time.Now()))

	rec, err := repo.SetQuantity(ctx, productID, 25)
	assert.NoError(t, err)
	assert.Equal(t, 25, rec.Quantity)
	assert.Equal(t, productID, rec.ProductID)
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT product_id, quantity, last_updated FROM product_inventory WHERE product_id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "last_updated"}).
				AddRow(productID, 7, time.Now()))

		rec, err := repo.Get(ctx, productID)
		assert.NoError(t, err)
		assert.Equal(t, 7, rec.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT product_id, quantity, last_updated FROM product_inventory`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "last_updated"}))

		_, err := repo.Get(ctx, productID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}
