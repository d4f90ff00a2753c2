package inventory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same deduction SQL
// can run standalone or inside an order status transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository interface {
	Get(ctx context.Context, productID uuid.UUID) (*Record, error)
	Deduct(ctx context.Context, productID uuid.UUID, quantity int) (int, error)
	DeductTx(ctx context.Context, tx DBTX, productID uuid.UUID, quantity int) (int, error)
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, productID uuid.UUID) (*Record, error) {
	query := `
		SELECT product_id, quantity, last_updated
		FROM product_inventory
		WHERE product_id = $1
	`

	var rec Record
	err := r.db.QueryRowContext(ctx, query, productID).
		Scan(&rec.ProductID, &rec.Quantity, &rec.LastUpdated)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) Deduct(ctx context.Context, productID uuid.UUID, quantity int) (int, error) {
	return r.DeductTx(ctx, r.db, productID, quantity)
}

// DeductTx performs the conditional decrement. The WHERE guard makes the
// read-modify-write atomic at the database, so two concurrent deductions
// against the same product can never both observe the pre-decrement value.
func (r *repository) DeductTx(ctx context.Context, tx DBTX, productID uuid.UUID, quantity int) (int, error) {
	query := `
		UPDATE product_inventory
		SET quantity = quantity - $2,
		    last_updated = NOW()
		WHERE product_id = $1
		  AND quantity >= $2
		RETURNING quantity
	`

	var remaining int
	err := tx.QueryRowContext(ctx, query, productID, quantity).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the record is missing or the decrement would go negative.
		var exists bool
		checkErr := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM product_inventory WHERE product_id = $1)`,
			productID,
		).Scan(&exists)
		if checkErr != nil {
			return 0, checkErr
		}
		if !exists {
			return 0, ErrRecordNotFound
		}
		return 0, ErrInsufficientStock
	}
	if err != nil {
		return 0, err
	}

	return remaining, nil
}

func (r *repository) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*Record, error) {
	query := `
		INSERT INTO product_inventory (product_id, quantity, last_updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = NOW()
		RETURNING product_id, quantity, last_updated
	`

	var rec Record
	err := r.db.QueryRowContext(ctx, query, productID, quantity).
		Scan(&rec.ProductID, &rec.Quantity, &rec.LastUpdated)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
