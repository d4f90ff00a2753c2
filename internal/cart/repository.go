package cart

import (
	"context"
	"database/sql"
	"errors"

	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetLines(ctx context.Context, userID uuid.UUID) ([]*Line, error)
	GetLineByProduct(ctx context.Context, userID, productID uuid.UUID) (*Line, error)
	Upsert(ctx context.Context, params AddItemParams) (*Line, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	AvailableStock(ctx context.Context, productID uuid.UUID) (int, bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetLines(ctx context.Context, userID uuid.UUID) ([]*Line, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetLines"),
		zap.String("user_id", userID.String()),
	)

	query := `
		SELECT
			c.id,
			c.user_id,
			c.product_id,
			p.name,
			p.price,
			p.image_url,
			c.quantity,
			c.created_at,
			c.updated_at
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query cart lines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lines []*Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.ProductID,
			&l.Name,
			&l.UnitPrice,
			&l.ImageURL,
			&l.Quantity,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			log.Error("failed to scan cart line", zap.Error(err))
			return nil, err
		}
		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *repository) GetLineByProduct(ctx context.Context, userID, productID uuid.UUID) (*Line, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`

	var l Line
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&l.ID,
		&l.UserID,
		&l.ProductID,
		&l.Quantity,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *repository) Upsert(ctx context.Context, params AddItemParams) (*Line, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("user_id", params.UserID.String()),
		zap.String("product_id", params.ProductID.String()),
	)

	query := `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`

	var l Line
	err := r.db.QueryRowContext(ctx, query,
		params.UserID,
		params.ProductID,
		params.Quantity,
	).Scan(
		&l.ID,
		&l.UserID,
		&l.ProductID,
		&l.Quantity,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert cart line", zap.Error(err))
		return nil, err
	}

	log.Info("cart line upserted", zap.Int("quantity", l.Quantity))

	return &l, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3
	`, quantity, userID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

// AvailableStock returns the inventory quantity for a product; ok is false
// when the product does not exist.
func (r *repository) AvailableStock(ctx context.Context, productID uuid.UUID) (int, bool, error) {
	query := `
		SELECT COALESCE(i.quantity, 0)
		FROM products p
		LEFT JOIN product_inventory i ON i.product_id = p.id
		WHERE p.id = $1
	`

	var stock int
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return stock, true, nil
}
