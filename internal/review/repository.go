package review

import (
	"context"
	"database/sql"
	"strings"

	"toko-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, userID uuid.UUID, params SubmitParams) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID uuid.UUID, params SubmitParams) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_id", params.ProductID.String()),
	)

	rev := &Review{
		ProductID: params.ProductID,
		UserID:    userID,
		Rating:    params.Rating,
		Comment:   params.Comment,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, params.ProductID, userID, params.Rating, params.Comment).
		Scan(&rev.ID, &rev.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "reviews_product_id_fkey") {
			return nil, ErrProductNotFound
		}
		log.Error("failed to insert review", zap.Error(err))
		return nil, err
	}

	log.Info("review created", zap.Int("rating", params.Rating))

	return rev, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, p.full_name, r.created_at
		FROM reviews r
		LEFT JOIN user_profiles p ON p.user_id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.UserID,
			&rev.Rating,
			&rev.Comment,
			&rev.ReviewerName,
			&rev.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}

	return reviews, rows.Err()
}
